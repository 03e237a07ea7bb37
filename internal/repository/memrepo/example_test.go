package memrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/mrled/humantime/internal/model"
	"github.com/mrled/humantime/pkg/phrasebook"
)

func ExampleMemoryRepository() {
	ctx := context.Background()
	repo := NewMemoryRepository()

	zh, _ := phrasebook.Builtin("zh")
	repo.Put(ctx, model.NewPhrasebookRecord(zh, time.Date(2025, 10, 17, 12, 0, 0, 0, time.UTC)))
	repo.Put(ctx, model.NewPhrasebookRecord(zh, time.Date(2025, 10, 18, 12, 0, 0, 0, time.UTC)))

	record, _ := repo.Get(ctx, "ZH")
	fmt.Println(record.Locale, record.Rev, record.UpdatedAt.Format(time.DateOnly))

	// Output:
	// zh 2 2025-10-18
}
