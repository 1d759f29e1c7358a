package shared

import "github.com/google/uuid"

// UniqueEntityID 聚合根/实体的全局唯一标识
// 对外是不透明的字符串，创建后不可变
type UniqueEntityID string

// NewUniqueEntityID 生成新的标识（UUIDv7，按时间有序，便于索引）
func NewUniqueEntityID() UniqueEntityID {
	id, err := uuid.NewV7()
	if err != nil {
		// 随机源异常时退化为 v4
		return UniqueEntityID(uuid.New().String())
	}
	return UniqueEntityID(id.String())
}

// String 实现 Stringer 接口
func (id UniqueEntityID) String() string {
	return string(id)
}

// IsZero 是否为空标识
func (id UniqueEntityID) IsZero() bool {
	return id == ""
}

// Equals 通过值判断两个标识是否相同
func (id UniqueEntityID) Equals(other UniqueEntityID) bool {
	return id == other
}
