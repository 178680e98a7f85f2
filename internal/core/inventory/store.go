package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"meadery-assistant/internal/core/reconcile"
	"meadery-assistant/internal/infrastructure/config"
	"meadery-assistant/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

// Store 庫存文件庫
// 每個使用者分區是一個 Redis hash：field = 文件 ID，value = msgpack 編碼的文件
// 併發寫入沿用 Redis 的 last-write-wins，不做衝突偵測
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore 創建庫存文件庫
func NewStore(cfg *config.Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Store.Addr,
		Password: cfg.Store.Password,
		DB:       cfg.Store.DB,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("庫存文件庫已連線",
		zap.String("addr", cfg.Store.Addr),
		zap.Int("db", cfg.Store.DB),
	)

	return &Store{
		client: client,
		prefix: cfg.Store.KeyPrefix,
	}, nil
}

// Ping 檢查儲存連線是否可用
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// key 組出使用者分區的 hash 鍵
func (s *Store) key(owner string) string {
	return fmt.Sprintf("%s:inventory:%s", s.prefix, owner)
}

// List 讀取使用者分區的全部庫存文件
func (s *Store) List(ctx context.Context, owner string) ([]common.InventoryItem, error) {
	raw, err := s.client.HGetAll(ctx, s.key(owner)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	items := make([]common.InventoryItem, 0, len(raw))
	for id, data := range raw {
		var item common.InventoryItem
		if err := msgpack.Unmarshal([]byte(data), &item); err != nil {
			// 壞掉的文件跳過不擋整個列表
			common.LogWarn("庫存文件解碼失敗，已跳過",
				zap.String("id", id),
				zap.Error(err),
			)
			continue
		}
		items = append(items, item)
	}

	// HGetAll 的順序不穩定，照名稱排序方便前端顯示
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})

	return items, nil
}

// Get 讀取單筆庫存文件
func (s *Store) Get(ctx context.Context, owner, id string) (*common.InventoryItem, error) {
	data, err := s.client.HGet(ctx, s.key(owner), id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, common.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}

	var item common.InventoryItem
	if err := msgpack.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("failed to decode inventory item: %w", err)
	}
	return &item, nil
}

// Put 寫入單筆庫存文件，ID 為空時視為新建
func (s *Store) Put(ctx context.Context, owner string, item *common.InventoryItem) error {
	if item.ID == "" {
		item.ID = common.GenerateUUID()
	}

	data, err := msgpack.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode inventory item: %w", err)
	}

	if err := s.client.HSet(ctx, s.key(owner), item.ID, data).Err(); err != nil {
		return fmt.Errorf("failed to put inventory item: %w", err)
	}
	return nil
}

// Delete 刪除單筆庫存文件
func (s *Store) Delete(ctx context.Context, owner, id string) error {
	removed, err := s.client.HDel(ctx, s.key(owner), id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	if removed == 0 {
		return common.ErrItemNotFound
	}
	return nil
}

// ApplyDeduction 將排定的扣庫存更新以單一 MULTI/EXEC 批次送出
// 全部一起生效或全部不生效；沒有自動重試，EXEC 失敗讓呼叫端重新發起
// 排程後被刪除的文件直接跳過，不會讓批次失敗
func (s *Store) ApplyDeduction(ctx context.Context, owner string, updates []reconcile.ScheduledUpdate) (int, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	key := s.key(owner)
	pipe := s.client.TxPipeline()
	scheduled := 0

	for _, upd := range updates {
		item, err := s.Get(ctx, owner, upd.ID)
		if err != nil {
			if err == common.ErrItemNotFound {
				common.LogWarn("扣庫存對象已不存在，跳過",
					zap.String("id", upd.ID),
					zap.String("name", upd.Name),
				)
				continue
			}
			return 0, err
		}

		item.Qty = upd.NewQty
		data, err := msgpack.Marshal(item)
		if err != nil {
			return 0, fmt.Errorf("failed to encode inventory item: %w", err)
		}
		pipe.HSet(ctx, key, item.ID, data)
		scheduled++
	}

	if scheduled == 0 {
		return 0, nil
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit deduction batch: %w", err)
	}

	common.LogInfo("扣庫存批次已送出",
		zap.String("owner", owner),
		zap.Int("updated", scheduled),
	)
	return scheduled, nil
}

// Close 關閉連線
func (s *Store) Close() error {
	return s.client.Close()
}
