package utils

import (
	"slices"

	"surveybot/model"
)

// Authorizer 决定谁可以创建问卷
type Authorizer struct {
	developers  []string
	adminsRoles []string
}

// NewAuthorizer 根据 "commands.auth" 配置创建 Authorizer
func NewAuthorizer(auth model.Auth) *Authorizer {
	return &Authorizer{developers: auth.Developers, adminsRoles: auth.AdminsRoles}
}

// Open 表示没有配置任何限制
func (a *Authorizer) Open() bool {
	return len(a.developers) == 0 && len(a.adminsRoles) == 0
}

// CheckAuth 检查用户是否有权限
// 未配置开发者和管理员角色时所有人都有权限
func (a *Authorizer) CheckAuth(userID string, roles []string) bool {
	if a.Open() {
		return true
	}

	// 检查是否为开发者
	if slices.Contains(a.developers, userID) {
		return true
	}

	// 检查是否拥有管理员角色
	for _, role := range roles {
		if slices.Contains(a.adminsRoles, role) {
			return true
		}
	}

	return false
}
