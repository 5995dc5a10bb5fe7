package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"farm_admin_v1/internal/service"
)

// ==================== 会话保活任务 ====================

// SessionTask 定时检查普通用户访问令牌的剩余有效期，临期时自动续期。
// 管理员 Cookie 会话由服务端维护，不需要客户端保活。
type SessionTask struct {
	Auth *service.AuthService
	Cron *cron.Cron

	// 临期阈值：剩余有效期低于该值就触发续期
	refreshWithin time.Duration
	log           *zap.Logger
}

func NewSessionTask(auth *service.AuthService, log *zap.Logger) *SessionTask {
	return &SessionTask{
		Auth:          auth,
		Cron:          cron.New(cron.WithSeconds()), // 支持秒级控制
		refreshWithin: 10 * time.Minute,
		log:           log,
	}
}

// Start 启动定时任务。启动时先跑一次，之后每 5 分钟检查一次。
func (t *SessionTask) Start() error {
	go t.runOnce()

	_, err := t.Cron.AddFunc("0 0/5 * * * *", t.runOnce)
	if err != nil {
		return err
	}

	t.Cron.Start()
	t.log.Info("会话保活任务已启动", zap.Duration("refreshWithin", t.refreshWithin))
	return nil
}

// Stop 停止任务，等待进行中的检查结束
func (t *SessionTask) Stop() {
	<-t.Cron.Stop().Done()
}

func (t *SessionTask) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if t.Auth.RefreshSession(ctx, t.refreshWithin) {
		t.log.Info("本轮会话续期完成")
	}
}
