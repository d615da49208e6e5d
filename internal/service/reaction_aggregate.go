package service

import (
	"Microblog/internal/api/dto"
	"Microblog/internal/model"
)

// AggregateReactions 按 emoji 分组，分组顺序与 ids 顺序均保持首次出现的顺序
func AggregateReactions(reactions []*model.Reaction) []*dto.ReactionSummaryDTO {
	summaries := make([]*dto.ReactionSummaryDTO, 0)
	index := make(map[string]*dto.ReactionSummaryDTO)
	for _, r := range reactions {
		summary, ok := index[r.Emoji]
		if !ok {
			summary = &dto.ReactionSummaryDTO{Emoji: r.Emoji, IDs: []string{}}
			index[r.Emoji] = summary
			summaries = append(summaries, summary)
		}
		summary.Count++
		summary.IDs = append(summary.IDs, r.ID)
	}
	return summaries
}
