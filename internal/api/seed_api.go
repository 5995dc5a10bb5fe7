package api

import (
	"context"
	"fmt"

	"farm_admin_v1/internal/api/dto"
	"farm_admin_v1/internal/transport"
)

// ==================== 种子管理 API ====================

// SeedAPI 种子配置管理接口
type SeedAPI struct {
	client *transport.Client
}

func NewSeedAPI(client *transport.Client) *SeedAPI {
	return &SeedAPI{client: client}
}

// List 分页获取种子列表
func (a *SeedAPI) List(ctx context.Context, params dto.PaginationParams) (*dto.SeedListResponse, error) {
	return transport.DoJSON[dto.SeedListResponse](ctx, a.client, transport.Request{
		Method: transport.MethodGet,
		URL:    "/seeds",
		Query:  pageQuery(params),
	})
}

// Detail 获取种子详情
func (a *SeedAPI) Detail(ctx context.Context, id int64) (*dto.SeedConfig, error) {
	return transport.DoJSON[dto.SeedConfig](ctx, a.client, transport.Request{
		Method: transport.MethodGet,
		URL:    fmt.Sprintf("/seeds/%d", id),
	})
}

// Create 创建种子
func (a *SeedAPI) Create(ctx context.Context, req dto.CreateSeedRequest) (*dto.SeedConfig, error) {
	return transport.DoJSON[dto.SeedConfig](ctx, a.client, transport.Request{
		Method: transport.MethodPost,
		URL:    "/seeds",
		Body:   req,
	})
}

// Update 更新种子
func (a *SeedAPI) Update(ctx context.Context, id int64, req dto.UpdateSeedRequest) error {
	_, err := a.client.Do(ctx, transport.Request{
		Method: transport.MethodPut,
		URL:    fmt.Sprintf("/seeds/%d", id),
		Body:   req,
	})
	return err
}

// Delete 删除种子
func (a *SeedAPI) Delete(ctx context.Context, id int64) error {
	_, err := a.client.Do(ctx, transport.Request{
		Method: transport.MethodDelete,
		URL:    fmt.Sprintf("/seeds/%d", id),
	})
	return err
}

// UpdateStatus 启用 / 禁用种子
func (a *SeedAPI) UpdateStatus(ctx context.Context, id int64, status int) error {
	_, err := a.client.Do(ctx, transport.Request{
		Method: transport.MethodPut,
		URL:    fmt.Sprintf("/seeds/%d/status", id),
		Body:   dto.UpdateSeedStatusRequest{Status: status},
	})
	return err
}
