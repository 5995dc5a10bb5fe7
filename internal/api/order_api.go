package api

import (
	"context"

	"farm_admin_v1/internal/api/dto"
	"farm_admin_v1/internal/transport"
)

// ==================== 订单补单 API ====================

// OrderAPI 订单补单接口（手动修复订单状态，仅超管可用）
type OrderAPI struct {
	client *transport.Client
}

func NewOrderAPI(client *transport.Client) *OrderAPI {
	return &OrderAPI{client: client}
}

// RepairPay 补单支付：手动触发订单支付成功逻辑
func (a *OrderAPI) RepairPay(ctx context.Context, orderID string) error {
	_, err := a.client.Do(ctx, transport.Request{
		Method: transport.MethodPost,
		URL:    "/orders/repair/pay",
		Body:   dto.RepairPayRequest{OrderID: orderID},
	})
	return err
}

// RepairCancel 补单取消：手动触发订单取消退款逻辑
func (a *OrderAPI) RepairCancel(ctx context.Context, orderID string) error {
	_, err := a.client.Do(ctx, transport.Request{
		Method: transport.MethodPost,
		URL:    "/orders/repair/cancel",
		Body:   dto.RepairCancelRequest{OrderID: orderID},
	})
	return err
}
