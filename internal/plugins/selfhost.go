package plugins

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/memoirlab/memoir-api/internal/core"
	v1 "github.com/memoirlab/memoir-api/internal/logic/v1"
	"github.com/memoirlab/memoir-api/pkg/safe"
	"github.com/memoirlab/memoir-api/pkg/types"
	"github.com/memoirlab/memoir-api/pkg/utils"
)

func NewSingleLock() *SingleLock {
	return &SingleLock{
		locks: make(map[string]bool),
	}
}

type SelfHostCustomConfig struct {
	ObjectStorage ObjectStorageDriver `toml:"object_storage"`
	Redis         *RedisConfig        `toml:"redis"`
}

type SingleLock struct {
	mu    sync.Mutex
	locks map[string]bool
}

// lockTTL bounds how long a key stays held when the caller's context never
// cancels.
const lockTTL = time.Minute

func (s *SingleLock) TryLock(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[key] {
		return false, nil
	}
	s.locks[key] = true
	go safe.Run(func() {
		select {
		case <-ctx.Done():
		case <-time.After(lockTTL):
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.locks, key)
	})
	return true, nil
}

var _ core.Plugins = (*SelfHostPlugin)(nil)

func newSelfHostMode() *SelfHostPlugin {
	return &SelfHostPlugin{
		Appid:      "memoir-selfhost",
		singleLock: NewSingleLock(),
	}
}

type SelfHostPlugin struct {
	core       *core.Core
	Appid      string
	singleLock *SingleLock
	core.FileStorage
	cache core.Cache

	customConfig SelfHostCustomConfig
}

func (s *SelfHostPlugin) Name() string {
	return "selfhost"
}

func (s *SelfHostPlugin) DefaultAppid() string {
	return s.Appid
}

func (s *SelfHostPlugin) Install(c *core.Core) error {
	s.core = c
	fmt.Println("Start initialize.")
	utils.SetupIDWorker(1)

	customConfig := core.NewCustomConfigPayload[SelfHostCustomConfig]()
	if err := s.core.Cfg().LoadCustomConfig(&customConfig); err != nil {
		return fmt.Errorf("Failed to install custom config, %w", err)
	}
	s.customConfig = customConfig.CustomConfig

	if s.customConfig.Redis != nil {
		s.cache = NewRedisCache(*s.customConfig.Redis)
	} else {
		s.cache = &NoneCache{}
	}

	if err := s.core.Store().Install(); err != nil {
		return fmt.Errorf("Initialize sql error: %w", err)
	}

	tokenCount, err := s.core.Store().AccessTokenStore().Total(context.Background())
	if err != nil {
		return fmt.Errorf("Initialize sql error: %w", err)
	}

	if tokenCount > 0 {
		fmt.Println("System is already initialized. Skip.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*20)
	defer cancel()
	userID := utils.GenRandomID()
	var token string

	err = s.core.Store().Transaction(ctx, func(ctx context.Context) error {
		if err := s.core.Store().UserStore().Create(ctx, types.User{
			ID:    userID,
			Appid: s.Appid,
			Name:  "memoir",
		}); err != nil {
			return err
		}

		authLogic := v1.NewAuthLogic(ctx, s.core)
		var err error
		token, err = authLogic.GenAccessToken(s.Appid, "Initialize the self-host token.", userID, time.Now().AddDate(999, 0, 0).Unix())
		return err
	})

	if err != nil {
		return err
	}

	fmt.Println("Appid:", s.Appid)
	fmt.Println("User id:", userID)
	fmt.Println("Access token:", token)
	return nil
}

func (s *SelfHostPlugin) Cache() core.Cache {
	return s.cache
}

func (s *SelfHostPlugin) TryLock(ctx context.Context, key string) (bool, error) {
	return s.singleLock.TryLock(ctx, key)
}

var (
	limiterMu sync.Mutex
	limiter   = make(map[string]*rate.Limiter)
)

// ratelimit 代表每分钟允许的数量
func (s *SelfHostPlugin) UseLimiter(key string, method string, defaultRatelimit int) core.Limiter {
	limiterMu.Lock()
	defer limiterMu.Unlock()
	l, exist := limiter[key]
	if !exist {
		limit := rate.Every(time.Minute / time.Duration(defaultRatelimit))
		l = rate.NewLimiter(limit, defaultRatelimit*2)
		limiter[key] = l
	}

	return l
}

func (s *SelfHostPlugin) FileUploader() core.FileStorage {
	if s.FileStorage != nil {
		return s.FileStorage
	}

	s.FileStorage = SetupObjectStorage(s.customConfig.ObjectStorage)

	return s.FileStorage
}
