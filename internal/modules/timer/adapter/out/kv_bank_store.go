package out

import (
	"context"
	"fmt"

	timerout "tempo/internal/modules/timer/port/out"
	"tempo/internal/platform/kvstore"
)

const timeBankKey = "time_bank"

// KVBankStore persists the time bank as a single signed minute count.
// A missing key reads as zero.
type KVBankStore struct {
	kv kvstore.Store
}

func NewKVBankStore(kv kvstore.Store) timerout.BankStore {
	return &KVBankStore{kv: kv}
}

func (s *KVBankStore) Balance(ctx context.Context) (int, error) {
	var minutes int
	if !s.kv.Get(ctx, timeBankKey, &minutes) {
		return 0, nil
	}
	return minutes, nil
}

func (s *KVBankStore) SetBalance(ctx context.Context, minutes int) error {
	if !s.kv.Set(ctx, timeBankKey, minutes) {
		return fmt.Errorf("save time bank: store rejected write")
	}
	return nil
}
