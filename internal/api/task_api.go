package api

import (
	"context"
	"fmt"

	"farm_admin_v1/internal/api/dto"
	"farm_admin_v1/internal/transport"
)

// ==================== 任务管理 API ====================

// TaskAPI 任务配置管理接口
type TaskAPI struct {
	client *transport.Client
}

func NewTaskAPI(client *transport.Client) *TaskAPI {
	return &TaskAPI{client: client}
}

// List 分页获取任务列表
func (a *TaskAPI) List(ctx context.Context, params dto.PaginationParams) (*dto.TaskListResponse, error) {
	return transport.DoJSON[dto.TaskListResponse](ctx, a.client, transport.Request{
		Method: transport.MethodGet,
		URL:    "/tasks",
		Query:  pageQuery(params),
	})
}

// Detail 获取任务详情
func (a *TaskAPI) Detail(ctx context.Context, id int64) (*dto.TaskConfig, error) {
	return transport.DoJSON[dto.TaskConfig](ctx, a.client, transport.Request{
		Method: transport.MethodGet,
		URL:    fmt.Sprintf("/tasks/%d", id),
	})
}

// Create 创建任务
func (a *TaskAPI) Create(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskConfig, error) {
	return transport.DoJSON[dto.TaskConfig](ctx, a.client, transport.Request{
		Method: transport.MethodPost,
		URL:    "/tasks",
		Body:   req,
	})
}

// Update 更新任务
func (a *TaskAPI) Update(ctx context.Context, id int64, req dto.UpdateTaskRequest) error {
	_, err := a.client.Do(ctx, transport.Request{
		Method: transport.MethodPut,
		URL:    fmt.Sprintf("/tasks/%d", id),
		Body:   req,
	})
	return err
}

// Delete 删除任务
func (a *TaskAPI) Delete(ctx context.Context, id int64) error {
	_, err := a.client.Do(ctx, transport.Request{
		Method: transport.MethodDelete,
		URL:    fmt.Sprintf("/tasks/%d", id),
	})
	return err
}
