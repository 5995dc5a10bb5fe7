package dto

// ================== 任务管理 DTO ==================

// TaskConfig 任务配置
type TaskConfig struct {
	ID          int64  `json:"id"`
	TaskName    string `json:"task_name"`
	TaskType    string `json:"task_type"`
	Description string `json:"description"`
	Reward      int64  `json:"reward"`
	MaxCount    int    `json:"max_count"`
	IsOneTime   bool   `json:"is_one_time"`
	IsEnabled   bool   `json:"is_enabled"`
	NeedClaim   bool   `json:"need_claim"`
	SortOrder   int    `json:"sort_order"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// TaskListResponse 任务列表响应
type TaskListResponse = PaginationResponse[TaskConfig]

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	TaskName    string `json:"task_name"`
	TaskType    string `json:"task_type"`
	Description string `json:"description,omitempty"`
	Reward      int64  `json:"reward"`
	MaxCount    int    `json:"max_count"`
	IsOneTime   *bool  `json:"is_one_time,omitempty"`
	IsEnabled   *bool  `json:"is_enabled,omitempty"`
	NeedClaim   *bool  `json:"need_claim,omitempty"`
	SortOrder   *int   `json:"sort_order,omitempty"`
}

// UpdateTaskRequest 更新任务请求
type UpdateTaskRequest struct {
	TaskName    string `json:"task_name,omitempty"`
	Description string `json:"description,omitempty"`
	Reward      *int64 `json:"reward,omitempty"`
	MaxCount    *int   `json:"max_count,omitempty"`
	IsOneTime   *bool  `json:"is_one_time,omitempty"`
	IsEnabled   *bool  `json:"is_enabled,omitempty"`
	NeedClaim   *bool  `json:"need_claim,omitempty"`
	SortOrder   *int   `json:"sort_order,omitempty"`
}
