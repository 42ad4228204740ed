package services

import "net/http"

// Response is the envelope every account operation returns. Code starts at
// 200 and is overwritten once by the branch that ends the operation.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Body    any    `json:"body,omitempty"`
}

const (
	MsgMissingAuth    = "未提供認證資訊"
	MsgForbidden      = "權限不足"
	MsgMissingData    = "缺少必要資料"
	MsgBadEmail       = "電子郵件格式錯誤"
	MsgUserNotFound   = "找不到使用者"
	MsgNotModified    = "資料並未有更新"
	MsgWrongPassword  = "密碼錯誤"
	MsgServerError    = "伺服器異常"
	MsgProfileUpdated = "更新資料成功"
	MsgPointsUpdated  = "點數更新成功"
	MsgAccountDeleted = "刪除帳號成功"
	MsgPasswordChange = "密碼修改成功"
	MsgRegistered     = "註冊成功"
	MsgEmailTaken     = "電子郵件已被使用"
	MsgLoggedIn       = "登入成功"
	MsgBadCredentials = "帳號或密碼錯誤"
	MsgLeaderboard    = "取得排行榜成功"
)

func newResponse() *Response {
	return &Response{Code: http.StatusOK}
}

func (r *Response) fail(code int, message string) *Response {
	r.Code = code
	r.Message = message
	return r
}
