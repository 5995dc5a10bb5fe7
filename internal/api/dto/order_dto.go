package dto

// ================== 订单补单 DTO ==================

// RepairPayRequest 补单支付请求（手动触发订单支付成功逻辑）
type RepairPayRequest struct {
	OrderID string `json:"order_id"`
}

// RepairCancelRequest 补单取消请求（手动触发订单取消退款逻辑）
type RepairCancelRequest struct {
	OrderID string `json:"order_id"`
}
