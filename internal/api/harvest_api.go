package api

import (
	"context"
	"fmt"
	"strconv"

	"farm_admin_v1/internal/api/dto"
	"farm_admin_v1/internal/transport"
)

// ==================== 收获记录管理 API ====================

// HarvestAPI 收获记录（兑换 / 发货）管理接口
type HarvestAPI struct {
	client *transport.Client
}

func NewHarvestAPI(client *transport.Client) *HarvestAPI {
	return &HarvestAPI{client: client}
}

// List 分页获取收获记录，支持按状态筛选
func (a *HarvestAPI) List(ctx context.Context, params dto.HarvestListParams) (*dto.HarvestListResponse, error) {
	q := map[string]string{}
	if params.Page > 0 {
		q["page"] = strconv.Itoa(params.Page)
	}
	if params.PageSize > 0 {
		q["page_size"] = strconv.Itoa(params.PageSize)
	}
	if params.Status != "" {
		q["status"] = params.Status
	}
	return transport.DoJSON[dto.HarvestListResponse](ctx, a.client, transport.Request{
		Method: transport.MethodGet,
		URL:    "/harvest",
		Query:  q,
	})
}

// Detail 获取收获记录详情
func (a *HarvestAPI) Detail(ctx context.Context, id int64) (*dto.HarvestRecord, error) {
	return transport.DoJSON[dto.HarvestRecord](ctx, a.client, transport.Request{
		Method: transport.MethodGet,
		URL:    fmt.Sprintf("/harvest/%d", id),
	})
}

// UpdateStatus 更新收获记录状态
func (a *HarvestAPI) UpdateStatus(ctx context.Context, id int64, status string) (*dto.HarvestRecord, error) {
	return transport.DoJSON[dto.HarvestRecord](ctx, a.client, transport.Request{
		Method: transport.MethodPut,
		URL:    fmt.Sprintf("/harvest/%d/status", id),
		Body:   dto.UpdateHarvestStatusRequest{Status: status},
	})
}

// UpdateTrackingNo 更新快递单号。
// 服务端会同时把状态置为 shipped，返回的记录已反映这次状态变更，
// 调用方不需要再发一次状态更新请求。
func (a *HarvestAPI) UpdateTrackingNo(ctx context.Context, id int64, trackingNo string) (*dto.HarvestRecord, error) {
	return transport.DoJSON[dto.HarvestRecord](ctx, a.client, transport.Request{
		Method: transport.MethodPut,
		URL:    fmt.Sprintf("/harvest/%d/tracking-no", id),
		Body:   dto.UpdateTrackingNoRequest{TrackingNo: trackingNo},
	})
}
