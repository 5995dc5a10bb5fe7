package api

import (
	"context"
	"fmt"
	"strconv"

	"farm_admin_v1/internal/api/dto"
	"farm_admin_v1/internal/transport"
)

// pageQuery 把分页参数拼成查询串，零值不下发
func pageQuery(p dto.PaginationParams) map[string]string {
	q := map[string]string{}
	if p.Page > 0 {
		q["page"] = strconv.Itoa(p.Page)
	}
	if p.PageSize > 0 {
		q["page_size"] = strconv.Itoa(p.PageSize)
	}
	return q
}

// ==================== 用户管理 API ====================

// UserAPI 小程序用户管理接口
type UserAPI struct {
	client *transport.Client
}

func NewUserAPI(client *transport.Client) *UserAPI {
	return &UserAPI{client: client}
}

// List 分页获取用户列表
func (a *UserAPI) List(ctx context.Context, params dto.PaginationParams) (*dto.UserListResponse, error) {
	return transport.DoJSON[dto.UserListResponse](ctx, a.client, transport.Request{
		Method: transport.MethodGet,
		URL:    "/users",
		Query:  pageQuery(params),
	})
}

// Detail 获取用户详情
func (a *UserAPI) Detail(ctx context.Context, id int64) (*dto.UserDetail, error) {
	return transport.DoJSON[dto.UserDetail](ctx, a.client, transport.Request{
		Method: transport.MethodGet,
		URL:    fmt.Sprintf("/users/%d", id),
	})
}

// Delete 删除用户
func (a *UserAPI) Delete(ctx context.Context, id int64) error {
	_, err := a.client.Do(ctx, transport.Request{
		Method: transport.MethodDelete,
		URL:    fmt.Sprintf("/users/%d", id),
	})
	return err
}

// UpdateStatus 启用 / 禁用用户
func (a *UserAPI) UpdateStatus(ctx context.Context, id int64, status int) error {
	_, err := a.client.Do(ctx, transport.Request{
		Method: transport.MethodPut,
		URL:    fmt.Sprintf("/users/%d/status", id),
		Body:   dto.UpdateUserStatusRequest{Status: status},
	})
	return err
}

// AdjustFertilizer 调整用户肥料数量
func (a *UserAPI) AdjustFertilizer(ctx context.Context, id int64, req dto.AdjustFertilizerRequest) error {
	_, err := a.client.Do(ctx, transport.Request{
		Method: transport.MethodPost,
		URL:    fmt.Sprintf("/users/%d/fertilizer/adjust", id),
		Body:   req,
	})
	return err
}

// UpdateMaxDailyFertilizeCount 更新用户每天最大施肥次数
func (a *UserAPI) UpdateMaxDailyFertilizeCount(ctx context.Context, id int64, count int) error {
	_, err := a.client.Do(ctx, transport.Request{
		Method: transport.MethodPut,
		URL:    fmt.Sprintf("/users/%d/max-daily-fertilize-count", id),
		Body:   dto.UpdateMaxFertilizeCountRequest{MaxDailyFertilizeCount: count},
	})
	return err
}
