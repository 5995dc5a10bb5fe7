package mockadmin

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"farm_admin_v1/internal/api/dto"
	"farm_admin_v1/internal/constant"
)

// ==================== 资源接口 ====================

func pageParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(constant.DefaultPageSize)))
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = constant.DefaultPageSize
	}
	return page, size
}

// paginate 返回 [start, end) 切片边界
func paginate(total, page, size int) (int, int) {
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return start, end
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, 400, "无效的 id")
		return 0, false
	}
	return id, true
}

// ---------- 用户 ----------

func (s *Server) listUsers(c *gin.Context) {
	page, size := pageParams(c)
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]dto.FarmUserInfo, 0, len(s.users))
	for _, u := range s.users {
		list = append(list, u.User)
	}
	start, end := paginate(len(list), page, size)
	ok(c, dto.UserListResponse{List: list[start:end], Page: page, PageSize: size, Total: len(list)})
}

func (s *Server) userDetail(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.User.ID == id {
			ok(c, dto.UserDetail{User: u.User, GameState: u.Game, Identities: u.Identities})
			return
		}
	}
	fail(c, 1404, "用户不存在")
}

func (s *Server) deleteUser(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.User.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			ok(c, nil)
			return
		}
	}
	fail(c, 1404, "用户不存在")
}

func (s *Server) updateUserStatus(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req dto.UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, "请求参数错误")
		return
	}
	if req.Status != constant.StatusNormal && req.Status != constant.StatusDisabled {
		fail(c, 400, "无效的状态值")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].User.ID == id {
			s.users[i].User.Status = req.Status
			s.users[i].User.UpdatedAt = now()
			ok(c, nil)
			return
		}
	}
	fail(c, 1404, "用户不存在")
}

func (s *Server) adjustFertilizer(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req dto.AdjustFertilizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, "请求参数错误")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].User.ID != id {
			continue
		}
		next := s.users[i].Game.FertilizerAmount + req.Amount
		if next < 0 {
			fail(c, 1400, "肥料数量不能为负")
			return
		}
		s.users[i].Game.FertilizerAmount = next
		s.users[i].User.UpdatedAt = now()
		ok(c, nil)
		return
	}
	fail(c, 1404, "用户不存在")
}

func (s *Server) updateMaxFertilize(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req dto.UpdateMaxFertilizeCountRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.MaxDailyFertilizeCount < 0 {
		fail(c, 400, "请求参数错误")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].User.ID == id {
			s.users[i].Game.MaxDailyFertilize = req.MaxDailyFertilizeCount
			s.users[i].User.UpdatedAt = now()
			ok(c, nil)
			return
		}
	}
	fail(c, 1404, "用户不存在")
}

// ---------- 种子 ----------

func (s *Server) listSeeds(c *gin.Context) {
	page, size := pageParams(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	start, end := paginate(len(s.seeds), page, size)
	ok(c, dto.SeedListResponse{List: s.seeds[start:end], Page: page, PageSize: size, Total: len(s.seeds)})
}

func (s *Server) seedDetail(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, seed := range s.seeds {
		if seed.ID == id {
			ok(c, seed)
			return
		}
	}
	fail(c, 1404, "种子不存在")
}

func (s *Server) createSeed(c *gin.Context) {
	var req dto.CreateSeedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		fail(c, 400, "请求参数错误")
		return
	}

	// 奖励类型由配置推导：配了券就是券，否则是实物
	rewardType := "physical"
	if req.CouponID != "" {
		rewardType = "coupon"
	}
	status := constant.StatusNormal
	if req.Status != nil {
		status = *req.Status
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	seed := dto.SeedConfig{
		ID:         s.allocID(),
		Name:       req.Name,
		IconURL:    req.IconURL,
		RewardType: rewardType,
		ShopSkuID:  req.ShopSkuID,
		CouponID:   req.CouponID,
		SortOrder:  req.SortOrder,
		Status:     status,
		CreatedAt:  now(),
		UpdatedAt:  now(),
	}
	s.seeds = append(s.seeds, seed)
	ok(c, seed)
}

func (s *Server) updateSeed(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req dto.UpdateSeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, "请求参数错误")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.seeds {
		if s.seeds[i].ID != id {
			continue
		}
		if req.Name != "" {
			s.seeds[i].Name = req.Name
		}
		if req.IconURL != "" {
			s.seeds[i].IconURL = req.IconURL
		}
		if req.ShopSkuID != "" {
			s.seeds[i].ShopSkuID = req.ShopSkuID
		}
		if req.CouponID != "" {
			s.seeds[i].CouponID = req.CouponID
			s.seeds[i].RewardType = "coupon"
		}
		if req.SortOrder != nil {
			s.seeds[i].SortOrder = *req.SortOrder
		}
		s.seeds[i].UpdatedAt = now()
		ok(c, nil)
		return
	}
	fail(c, 1404, "种子不存在")
}

func (s *Server) deleteSeed(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, seed := range s.seeds {
		if seed.ID == id {
			s.seeds = append(s.seeds[:i], s.seeds[i+1:]...)
			ok(c, nil)
			return
		}
	}
	fail(c, 1404, "种子不存在")
}

func (s *Server) updateSeedStatus(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req dto.UpdateSeedStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, "请求参数错误")
		return
	}
	if req.Status != constant.StatusNormal && req.Status != constant.StatusDisabled {
		fail(c, 400, "无效的状态值")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.seeds {
		if s.seeds[i].ID == id {
			s.seeds[i].Status = req.Status
			s.seeds[i].UpdatedAt = now()
			ok(c, nil)
			return
		}
	}
	fail(c, 1404, "种子不存在")
}

// ---------- 任务 ----------

func (s *Server) listTasks(c *gin.Context) {
	page, size := pageParams(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	start, end := paginate(len(s.tasks), page, size)
	ok(c, dto.TaskListResponse{List: s.tasks[start:end], Page: page, PageSize: size, Total: len(s.tasks)})
}

func (s *Server) taskDetail(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			ok(c, t)
			return
		}
	}
	fail(c, 1404, "任务不存在")
}

func (s *Server) createTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TaskName == "" || req.TaskType == "" {
		fail(c, 400, "请求参数错误")
		return
	}

	boolOf := func(p *bool) bool { return p != nil && *p }
	t := dto.TaskConfig{
		TaskName:    req.TaskName,
		TaskType:    req.TaskType,
		Description: req.Description,
		Reward:      req.Reward,
		MaxCount:    req.MaxCount,
		IsOneTime:   boolOf(req.IsOneTime),
		IsEnabled:   req.IsEnabled == nil || *req.IsEnabled,
		NeedClaim:   boolOf(req.NeedClaim),
		CreatedAt:   now(),
		UpdatedAt:   now(),
	}
	if req.SortOrder != nil {
		t.SortOrder = *req.SortOrder
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.allocID()
	s.tasks = append(s.tasks, t)
	ok(c, t)
}

func (s *Server) updateTask(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, "请求参数错误")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		if req.TaskName != "" {
			s.tasks[i].TaskName = req.TaskName
		}
		if req.Description != "" {
			s.tasks[i].Description = req.Description
		}
		if req.Reward != nil {
			s.tasks[i].Reward = *req.Reward
		}
		if req.MaxCount != nil {
			s.tasks[i].MaxCount = *req.MaxCount
		}
		if req.IsOneTime != nil {
			s.tasks[i].IsOneTime = *req.IsOneTime
		}
		if req.IsEnabled != nil {
			s.tasks[i].IsEnabled = *req.IsEnabled
		}
		if req.NeedClaim != nil {
			s.tasks[i].NeedClaim = *req.NeedClaim
		}
		if req.SortOrder != nil {
			s.tasks[i].SortOrder = *req.SortOrder
		}
		s.tasks[i].UpdatedAt = now()
		ok(c, nil)
		return
	}
	fail(c, 1404, "任务不存在")
}

func (s *Server) deleteTask(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			ok(c, nil)
			return
		}
	}
	fail(c, 1404, "任务不存在")
}

// ---------- 收获记录 ----------

func (s *Server) listHarvests(c *gin.Context) {
	page, size := pageParams(c)
	status := c.Query("status")

	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]dto.HarvestRecord, 0, len(s.harvests))
	for _, h := range s.harvests {
		if status == "" || h.Status == status {
			records = append(records, h)
		}
	}
	start, end := paginate(len(records), page, size)
	ok(c, dto.HarvestListResponse{Records: records[start:end], Page: page, Size: size, Total: len(records)})
}

func (s *Server) harvestDetail(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.harvests {
		if h.ID == id {
			ok(c, h)
			return
		}
	}
	fail(c, 1404, "收获记录不存在")
}

// harvestTransitions 正向流转表；取消单独判（任意非终态可取消）
var harvestTransitions = map[string]string{
	constant.HarvestUnredeemed: constant.HarvestPending,
	constant.HarvestPending:    constant.HarvestShipped,
	constant.HarvestShipped:    constant.HarvestCompleted,
}

func (s *Server) updateHarvestStatus(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req dto.UpdateHarvestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, "请求参数错误")
		return
	}
	if _, known := constant.HarvestStatusMap[req.Status]; !known {
		fail(c, 400, "无效的状态值")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.harvests {
		h := &s.harvests[i]
		if h.ID != id {
			continue
		}

		switch {
		case req.Status == constant.HarvestCancelled:
			if constant.IsHarvestTerminal(h.Status) {
				fail(c, 1400, fmt.Sprintf("状态 %s 不可取消", h.Status))
				return
			}
		case harvestTransitions[h.Status] != req.Status:
			fail(c, 1400, fmt.Sprintf("不允许从 %s 流转到 %s", h.Status, req.Status))
			return
		}

		h.Status = req.Status
		h.UpdatedAt = now()
		switch req.Status {
		case constant.HarvestPending:
			h.RedeemedAt = now()
		case constant.HarvestShipped:
			h.ShippedAt = now()
		case constant.HarvestCompleted:
			h.CompletedAt = now()
		}
		ok(c, *h)
		return
	}
	fail(c, 1404, "收获记录不存在")
}

func (s *Server) updateTrackingNo(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req dto.UpdateTrackingNoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TrackingNo == "" {
		fail(c, 400, "请求参数错误")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.harvests {
		h := &s.harvests[i]
		if h.ID != id {
			continue
		}
		if constant.IsHarvestTerminal(h.Status) {
			fail(c, 1400, fmt.Sprintf("状态 %s 不可修改快递单号", h.Status))
			return
		}
		// 填了单号就视为已发货，单号和状态一次写入
		h.TrackingNo = req.TrackingNo
		if h.Status != constant.HarvestShipped {
			h.Status = constant.HarvestShipped
			h.ShippedAt = now()
		}
		h.UpdatedAt = now()
		ok(c, *h)
		return
	}
	fail(c, 1404, "收获记录不存在")
}

// ---------- 订单补单 ----------

func (s *Server) repairPay(c *gin.Context) {
	var req dto.RepairPayRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" {
		fail(c, 400, "请求参数错误")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	state, exists := s.orders[req.OrderID]
	if !exists {
		fail(c, 1404, "订单不存在")
		return
	}
	if state != "pay_failed" {
		fail(c, 1400, "订单当前状态不支持补支付")
		return
	}
	s.orders[req.OrderID] = "paid"
	ok(c, nil)
}

func (s *Server) repairCancel(c *gin.Context) {
	var req dto.RepairCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" {
		fail(c, 400, "请求参数错误")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	state, exists := s.orders[req.OrderID]
	if !exists {
		fail(c, 1404, "订单不存在")
		return
	}
	if state != "cancel_failed" {
		fail(c, 1400, "订单当前状态不支持补取消")
		return
	}
	s.orders[req.OrderID] = "cancelled"
	ok(c, nil)
}
