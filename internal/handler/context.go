package handler

type ContextKey string

var (
	RoleCtxKey      ContextKey = "role"
	SubCtxKey       ContextKey = "sub"
	MyInfoCtx       ContextKey = "myInfo"
	InchargeInfoCtx ContextKey = "inchargeInfo"
	SessionCtx      ContextKey = "session"
)
