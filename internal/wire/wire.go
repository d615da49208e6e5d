package wire

import (
	"Microblog/internal/api"
	"Microblog/internal/api/config"
	"Microblog/internal/api/handler"
	"Microblog/internal/job"
	"Microblog/internal/pkg/cron"
	"Microblog/internal/pkg/database"
	"Microblog/internal/pkg/event"
	"Microblog/internal/pkg/imageproc"
	"Microblog/internal/pkg/redis"
	"Microblog/internal/pkg/storage"
	"Microblog/internal/repository"
	"Microblog/internal/repository/memory"
	"Microblog/internal/service"
	"context"
	"fmt"
	log "log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
	Bus     *event.Bus[event.AttachmentCreated]
}

type repositories struct {
	post       repository.PostRepo
	draft      repository.DraftRepo
	comment    repository.CommentRepo
	reaction   repository.ReactionRepo
	attachment repository.AttachmentRepo
}

func buildRepositories(cfg *config.DBConfig) (*repositories, *gorm.DB, error) {
	switch cfg.Driver {
	case "memory":
		log.Warn("Using in-memory repositories, data will not survive a restart.")
		store := memory.New()
		return &repositories{
			post:       store,
			draft:      store,
			comment:    store,
			reaction:   store,
			attachment: store,
		}, nil, nil
	case "", "mysql":
		db, err := database.NewGormDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		return &repositories{
			post:       repository.NewPostRepo(db),
			draft:      repository.NewDraftRepo(db),
			comment:    repository.NewCommentRepo(db),
			reaction:   repository.NewReactionRepo(db),
			attachment: repository.NewAttachmentRepo(db),
		}, db, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

func buildFileStore(ctx context.Context, cfg *config.StorageConfig) (storage.FileStore, error) {
	switch cfg.Driver {
	case "", "local":
		return storage.NewLocalStore(cfg.Root)
	case "minio":
		return storage.NewMinIOStore(ctx, cfg.MinIO)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}

func BuildApplication(ctx context.Context, cfg *config.Config) (*ApplicationContainer, error) {
	repos, db, err := buildRepositories(&cfg.DB)
	if err != nil {
		return nil, err
	}

	fileStore, err := buildFileStore(ctx, &cfg.Storage)
	if err != nil {
		return nil, err
	}

	bus := event.NewBus[event.AttachmentCreated]("thumbnail", cfg.Event.Buffer, cfg.Event.Workers)

	attachmentService := service.NewAttachmentService(
		repos.attachment, repos.post, repos.draft, repos.comment, fileStore, bus, cfg.Upload.MaxSize,
	)
	thumbnailService := service.NewThumbnailService(
		repos.attachment, fileStore, imageproc.NewResizer(), cfg.Thumbnail.Width, cfg.Thumbnail.Dir,
	)
	bus.Subscribe(thumbnailService.HandleAttachmentCreated)

	postService := service.NewPostService(repos.post, repos.reaction, attachmentService, cfg.Cleanup.GraceDays)
	draftService := service.NewDraftService(repos.draft, attachmentService)
	commentService := service.NewCommentService(repos.comment, repos.post, repos.reaction, attachmentService)
	reactionService := service.NewReactionService(repos.reaction, repos.post, repos.comment)
	cleanupService := service.NewCleanupService(
		repos.post, repos.draft, repos.comment, repos.reaction, attachmentService, cfg.Cleanup.GraceDays,
	)

	handlers := &api.HandlersGroup{
		PostHandler:       handler.NewPostHandler(postService),
		DraftHandler:      handler.NewDraftHandler(draftService),
		CommentHandler:    handler.NewCommentHandler(commentService),
		ReactionHandler:   handler.NewReactionHandler(reactionService),
		AttachmentHandler: handler.NewAttachmentHandler(attachmentService, cfg.Upload.MaxSize),
	}

	router := api.SetupRouter(handlers)

	locker := redis.NewNoopLocker()
	if redis.Rdb != nil {
		locker = redis.NewLocker(redis.Rdb)
	}
	cronMgr := cron.NewCronManager(
		cfg.Cleanup.Spec,
		job.NewDraftCleanupJob(cleanupService, locker),
		job.NewTrashCleanupJob(cleanupService, locker),
	)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
		Bus:     bus,
	}, nil
}
