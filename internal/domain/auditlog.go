package domain

import "time"

type ActionType string

const (
	ActionLogin            ActionType = "LOGIN"
	ActionLogout           ActionType = "LOGOUT"
	ActionCreate           ActionType = "CREATE"
	ActionUpdate           ActionType = "UPDATE"
	ActionDelete           ActionType = "DELETE"
	ActionView             ActionType = "VIEW"
	ActionExport           ActionType = "EXPORT"
	ActionImport           ActionType = "IMPORT"
	ActionAssign           ActionType = "ASSIGN"
	ActionChangeStatus     ActionType = "CHANGE_STATUS"
	ActionUpload           ActionType = "UPLOAD"
	ActionDownload         ActionType = "DOWNLOAD"
	ActionLoginFailed      ActionType = "LOGIN_FAILED"
	ActionPermissionChange ActionType = "PERMISSION_CHANGE"
	ActionOther            ActionType = "OTHER"
)

// AuditLog entries are immutable once written.
type AuditLog struct {
	ID          int32      `json:"id"`
	StaffID     *int32     `json:"staff_id,omitempty"`
	LogDate     time.Time  `json:"log_date"`
	Action      ActionType `json:"action_type"`
	Success     bool       `json:"success_status"`
	Description string     `json:"description_text,omitempty"`
}
