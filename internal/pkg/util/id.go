package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// IDLength 实体 ID 长度
const IDLength = 21

// NewID 生成 21 位随机 ID
func NewID() string {
	id, err := gonanoid.New(IDLength)
	if err != nil {
		// crypto/rand 不可用时无法继续
		panic(err)
	}
	return id
}
