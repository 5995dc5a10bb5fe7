package mockadmin

import (
	"golang.org/x/crypto/bcrypt"

	"farm_admin_v1/internal/api/dto"
	"farm_admin_v1/internal/constant"
)

// seedData 装载演示数据：三个角色各一个管理员账号、
// 一个普通用户账号、若干用户 / 种子 / 任务 / 收获记录。
func (s *Server) seedData() {
	hash := func(pwd string) []byte {
		h, _ := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.MinCost)
		return h
	}

	s.admins = []adminAccount{
		{ID: 1, Username: "super", PassHash: hash("super123"), Role: constant.RoleSuperAdmin, Status: constant.StatusNormal},
		{ID: 2, Username: "admin", PassHash: hash("admin123"), Role: constant.RoleAdmin, Status: constant.StatusNormal},
		{ID: 3, Username: "operator", PassHash: hash("operator123"), Role: constant.RoleOperator, Status: constant.StatusNormal},
		{ID: 4, Username: "disabled", PassHash: hash("disabled123"), Role: constant.RoleOperator, Status: constant.StatusDisabled},
	}

	s.accounts = []regularAccount{
		{
			UserID:   "u_1001",
			UserName: "farmer01",
			PassHash: hash("farmer123"),
			Roles:    []string{"R_USER"},
			Buttons:  []string{"B_VIEW"},
		},
		{
			UserID:   "u_1002",
			UserName: "farmer02",
			PassHash: hash("farmer456"),
			Roles:    []string{"R_USER"},
			Buttons:  nil,
		},
	}

	s.users = []userRecord{
		{
			User: dto.FarmUserInfo{
				ID: 1, Nickname: "种树的小王", AvatarURL: "https://cdn.example.com/avatar/1.png",
				Status: constant.StatusNormal, LastLoginAt: "2025-08-01 09:30:00",
				CreatedAt: "2025-03-01 10:00:00", UpdatedAt: "2025-08-01 09:30:00",
			},
			Game: dto.UserGameState{
				Level: 5, Growth: 1280, TotalGrowth: 5320, FertilizerAmount: 36,
				MaxDailyFertilize: 10, CurrentSeedID: 1, CurrentRoundID: 3, CanHarvest: false,
			},
			Identities: []dto.UserIdentity{
				{IdentityType: "wechat", OpenID: "oWx_001", UnionID: "uWx_001", CreatedAt: "2025-03-01 10:00:00"},
			},
		},
		{
			User: dto.FarmUserInfo{
				ID: 2, Nickname: "果农老李", AvatarURL: "https://cdn.example.com/avatar/2.png",
				Status: constant.StatusNormal, LastLoginAt: "2025-08-02 20:15:00",
				CreatedAt: "2025-04-12 08:00:00", UpdatedAt: "2025-08-02 20:15:00",
			},
			Game: dto.UserGameState{
				Level: 9, Growth: 4100, TotalGrowth: 18900, FertilizerAmount: 120,
				MaxDailyFertilize: 15, CurrentSeedID: 2, CurrentRoundID: 7, CanHarvest: true,
			},
			Identities: []dto.UserIdentity{
				{IdentityType: "wechat", OpenID: "oWx_002", CreatedAt: "2025-04-12 08:00:00"},
			},
		},
		{
			User: dto.FarmUserInfo{
				ID: 3, Nickname: "被封的羊毛党", Status: constant.StatusDisabled,
				LastLoginAt: "2025-06-20 03:00:00",
				CreatedAt:   "2025-06-01 00:00:00", UpdatedAt: "2025-06-21 09:00:00",
			},
			Game: dto.UserGameState{Level: 2, Growth: 300, TotalGrowth: 300, MaxDailyFertilize: 10},
		},
	}

	s.seeds = []dto.SeedConfig{
		{
			ID: 1, Name: "苹果树", IconURL: "https://cdn.example.com/seed/apple.png",
			RewardType: "physical", ShopSkuID: "sku_apple_5kg", SortOrder: 1,
			Status: constant.StatusNormal, CreatedAt: "2025-02-01 00:00:00", UpdatedAt: "2025-02-01 00:00:00",
		},
		{
			ID: 2, Name: "橙子树", IconURL: "https://cdn.example.com/seed/orange.png",
			RewardType: "physical", ShopSkuID: "sku_orange_5kg", SortOrder: 2,
			Status: constant.StatusNormal, CreatedAt: "2025-02-01 00:00:00", UpdatedAt: "2025-05-10 00:00:00",
		},
		{
			ID: 3, Name: "满减券树", IconURL: "https://cdn.example.com/seed/coupon.png",
			RewardType: "coupon", CouponID: "cp_full100_30", SortOrder: 3,
			Status: constant.StatusDisabled, CreatedAt: "2025-02-15 00:00:00", UpdatedAt: "2025-07-01 00:00:00",
		},
	}

	s.tasks = []dto.TaskConfig{
		{
			ID: 1, TaskName: "每日登录", TaskType: "daily_login", Description: "每天首次打开小程序",
			Reward: 10, MaxCount: 1, IsEnabled: true, SortOrder: 1,
			CreatedAt: "2025-02-01 00:00:00", UpdatedAt: "2025-02-01 00:00:00",
		},
		{
			ID: 2, TaskName: "浏览商品", TaskType: "browse_product", Description: "浏览任意商品 15 秒",
			Reward: 5, MaxCount: 3, IsEnabled: true, NeedClaim: true, SortOrder: 2,
			CreatedAt: "2025-02-01 00:00:00", UpdatedAt: "2025-06-01 00:00:00",
		},
		{
			ID: 3, TaskName: "邀请好友", TaskType: "invite_friend", Description: "邀请新用户注册",
			Reward: 50, MaxCount: 5, IsOneTime: false, IsEnabled: false, NeedClaim: true, SortOrder: 3,
			CreatedAt: "2025-03-01 00:00:00", UpdatedAt: "2025-03-01 00:00:00",
		},
	}

	s.harvests = []dto.HarvestRecord{
		{
			ID: 1, UserID: 1, TreeID: 11, SeedID: 1, RoundID: 2,
			Status: constant.HarvestPending,
			SeedData: dto.SeedSnapshot{
				Name: "苹果树", IconURL: "https://cdn.example.com/seed/apple.png",
				RewardType: "physical", ShopSkuID: "sku_apple_5kg",
			},
			AddressData: dto.AddressSnapshot{
				Name: "王小明", Phone: "13812345678",
				Province: "浙江省", City: "杭州市", District: "西湖区", Detail: "文三路 100 号",
			},
			CreatedAt: "2025-07-01 10:00:00", RedeemedAt: "2025-07-02 09:00:00",
			UpdatedAt: "2025-07-02 09:00:00",
		},
		{
			ID: 2, UserID: 2, TreeID: 21, SeedID: 2, RoundID: 6,
			Status: constant.HarvestShipped, TrackingNo: "SF1234567890",
			SeedData: dto.SeedSnapshot{
				Name: "橙子树", IconURL: "https://cdn.example.com/seed/orange.png",
				RewardType: "physical", ShopSkuID: "sku_orange_5kg",
			},
			AddressData: dto.AddressSnapshot{
				Name: "李大壮", Phone: "13987654321",
				Province: "广东省", City: "深圳市", District: "南山区", Detail: "科技园路 1 号",
			},
			CreatedAt: "2025-06-10 14:00:00", RedeemedAt: "2025-06-11 10:00:00",
			ShippedAt: "2025-06-12 16:30:00", UpdatedAt: "2025-06-12 16:30:00",
		},
		{
			ID: 3, UserID: 2, TreeID: 22, SeedID: 1, RoundID: 5,
			Status: constant.HarvestCompleted, TrackingNo: "YT9876543210",
			SeedData: dto.SeedSnapshot{
				Name: "苹果树", IconURL: "https://cdn.example.com/seed/apple.png",
				RewardType: "physical", ShopSkuID: "sku_apple_5kg",
			},
			AddressData: dto.AddressSnapshot{
				Name: "李大壮", Phone: "13987654321",
				Province: "广东省", City: "深圳市", District: "南山区", Detail: "科技园路 1 号",
			},
			CreatedAt: "2025-05-01 09:00:00", RedeemedAt: "2025-05-02 10:00:00",
			ShippedAt: "2025-05-03 15:00:00", CompletedAt: "2025-05-08 12:00:00",
			UpdatedAt: "2025-05-08 12:00:00",
		},
		{
			ID: 4, UserID: 1, TreeID: 12, SeedID: 3, RoundID: 1,
			Status: constant.HarvestUnredeemed,
			SeedData: dto.SeedSnapshot{
				Name: "满减券树", IconURL: "https://cdn.example.com/seed/coupon.png",
				RewardType: "coupon", CouponID: "cp_full100_30",
			},
			CreatedAt: "2025-07-20 11:00:00", UpdatedAt: "2025-07-20 11:00:00",
		},
	}

	s.orders = map[string]string{
		"ord_20250801_001": "pay_failed",
		"ord_20250802_002": "cancel_failed",
	}

	s.nextID = 100
}

// allocID 分配自增 id。调用方持锁。
func (s *Server) allocID() int64 {
	s.nextID++
	return s.nextID
}
