package v1

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/memoirlab/memoir-api/internal/core"
	"github.com/memoirlab/memoir-api/internal/core/srv"
	"github.com/memoirlab/memoir-api/pkg/errors"
	"github.com/memoirlab/memoir-api/pkg/i18n"
	"github.com/memoirlab/memoir-api/pkg/safe"
	"github.com/memoirlab/memoir-api/pkg/types"
	"github.com/memoirlab/memoir-api/pkg/utils"
)

type EntryLogic struct {
	UserInfo
	ctx  context.Context
	core *core.Core
}

func NewEntryLogic(ctx context.Context, core *core.Core) *EntryLogic {
	l := &EntryLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: setupUserInfo(ctx, core),
	}

	return l
}

type CreateEntryArgs struct {
	Type       types.EntryType
	Text       string
	HappenedOn string
}

func (l *EntryLogic) validateCreateArgs(args CreateEntryArgs) error {
	if !args.Type.Valid() {
		return errors.New("EntryLogic.validateCreateArgs.Type", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if args.Type == types.ENTRY_TYPE_QUOTE && strings.TrimSpace(args.Text) == "" {
		return errors.New("EntryLogic.validateCreateArgs.Text", i18n.ERROR_LOGIC_QUOTE_TEXT_EMPTY, nil).Code(http.StatusBadRequest)
	}
	if !utils.IsCalendarDate(args.HappenedOn) {
		return errors.New("EntryLogic.validateCreateArgs.HappenedOn", i18n.ERROR_LOGIC_INVALID_DATE, nil).Code(http.StatusBadRequest)
	}
	return nil
}

// CreateEntry writes the entry row first and then attaches images through
// the given strategy. A failed attach does not undo the entry, the user
// keeps a memory with fewer or no images and the failure is logged.
func (l *EntryLogic) CreateEntry(args CreateEntryArgs, strategy CreationStrategy) (*types.EntryDetail, error) {
	user := l.GetUserInfo()
	if user.User == "" {
		return nil, errors.New("EntryLogic.CreateEntry.auth", i18n.ERROR_UNAUTHORIZED, nil).Code(http.StatusUnauthorized)
	}

	if err := l.validateCreateArgs(args); err != nil {
		return nil, errors.Trace("EntryLogic.CreateEntry", err)
	}

	var text *string
	if strings.TrimSpace(args.Text) != "" {
		text = &args.Text
	}

	entry := types.Entry{
		ID:         utils.GenSpecIDStr(),
		UserID:     user.User,
		Type:       args.Type,
		Text:       text,
		HappenedOn: args.HappenedOn,
		CreatedAt:  time.Now().Unix(),
	}

	if err := l.core.Store().EntryStore().Create(l.ctx, entry); err != nil {
		return nil, errors.New("EntryLogic.CreateEntry.EntryStore.Create", i18n.ERROR_INTERNAL, err)
	}

	images, err := strategy.Attach(l.ctx, entry)
	if err != nil {
		// fail open, the entry already exists and stays
		slog.Error("Failed to attach entry images",
			slog.String("entry_id", entry.ID),
			slog.String("strategy", strategy.Name()),
			slog.String("error", err.Error()))
	}

	l.core.Metrics().EntryCreated(string(entry.Type))
	l.core.Srv().Views().Invalidate(srv.DateViewKey(user.User, entry.HappenedOn), srv.CalendarViewKey(user.User))

	return &types.EntryDetail{
		Entry:  entry,
		Images: images,
	}, nil
}

// ListEntriesForDate returns one day's entries, newest first, images in
// insertion order with their signed urls already resolved.
func (l *EntryLogic) ListEntriesForDate(date string) ([]types.EntryDetail, error) {
	user := l.GetUserInfo()
	if user.User == "" {
		return nil, errors.New("EntryLogic.ListEntriesForDate.auth", i18n.ERROR_UNAUTHORIZED, nil).Code(http.StatusUnauthorized)
	}
	if !utils.IsCalendarDate(date) {
		return nil, errors.New("EntryLogic.ListEntriesForDate.date", i18n.ERROR_LOGIC_INVALID_DATE, nil).Code(http.StatusBadRequest)
	}

	entries, err := l.core.Store().EntryStore().ListByDate(l.ctx, user.User, date)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("EntryLogic.ListEntriesForDate.EntryStore.ListByDate", i18n.ERROR_INTERNAL, err)
	}

	entryIDs := lo.Map(entries, func(item types.Entry, _ int) string {
		return item.ID
	})

	images, err := l.core.Store().EntryImageStore().ListByEntryIDs(l.ctx, entryIDs)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("EntryLogic.ListEntriesForDate.EntryImageStore.ListByEntryIDs", i18n.ERROR_INTERNAL, err)
	}

	grouped := lo.GroupBy(images, func(item types.EntryImage) string {
		return item.EntryID
	})

	result := make([]types.EntryDetail, 0, len(entries))
	for _, entry := range entries {
		entryImages := grouped[entry.ID]
		paths := lo.Map(entryImages, func(item types.EntryImage, _ int) string {
			return item.StoragePath
		})

		slots := ResolveSignedURLs(l.core.FileStorage(), paths, l.core.Metrics().SignFailed)
		urls := lo.FilterMap(slots, func(item *string, _ int) (string, bool) {
			if item == nil {
				return "", false
			}
			return *item, true
		})

		result = append(result, types.EntryDetail{
			Entry:     entry,
			Images:    entryImages,
			ImageURLs: urls,
		})
	}

	return result, nil
}

// CalendarMarks returns the distinct dates that have at least one entry.
// Served from the view cache when primed, recomputed otherwise.
func (l *EntryLogic) CalendarMarks() ([]string, error) {
	user := l.GetUserInfo()
	if user.User == "" {
		return nil, errors.New("EntryLogic.CalendarMarks.auth", i18n.ERROR_UNAUTHORIZED, nil).Code(http.StatusUnauthorized)
	}

	if dates, hit := l.core.Srv().Views().GetCalendar(l.ctx, user.User); hit {
		return dates, nil
	}

	dates, err := l.core.Store().EntryStore().ListDates(l.ctx, user.User)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("EntryLogic.CalendarMarks.EntryStore.ListDates", i18n.ERROR_INTERNAL, err)
	}

	dates = lo.Uniq(dates)
	l.core.Srv().Views().SetCalendar(l.ctx, user.User, dates)
	return dates, nil
}

// UpdateEntryText patches the text only. Re-submitting the current text is
// a no-op success.
func (l *EntryLogic) UpdateEntryText(id, text string) (*types.Entry, error) {
	user := l.GetUserInfo()
	if user.User == "" {
		return nil, errors.New("EntryLogic.UpdateEntryText.auth", i18n.ERROR_UNAUTHORIZED, nil).Code(http.StatusUnauthorized)
	}

	entry, err := l.core.Store().EntryStore().GetEntry(l.ctx, user.User, id)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("EntryLogic.UpdateEntryText.EntryStore.GetEntry", i18n.ERROR_INTERNAL, err)
	}
	if entry == nil {
		return nil, errors.New("EntryLogic.UpdateEntryText.EntryStore.GetEntry.nil", i18n.ERROR_NOTFOUND, err).Code(http.StatusNotFound)
	}

	if entry.Type == types.ENTRY_TYPE_QUOTE && strings.TrimSpace(text) == "" {
		return nil, errors.New("EntryLogic.UpdateEntryText.Text", i18n.ERROR_LOGIC_QUOTE_TEXT_EMPTY, nil).Code(http.StatusBadRequest)
	}

	if entry.Text != nil && *entry.Text == text {
		return entry, nil
	}

	if err = l.core.Store().EntryStore().UpdateText(l.ctx, id, text); err != nil {
		return nil, errors.New("EntryLogic.UpdateEntryText.EntryStore.UpdateText", i18n.ERROR_INTERNAL, err)
	}

	entry.Text = &text
	l.core.Srv().Views().Invalidate(srv.DateViewKey(user.User, entry.HappenedOn), srv.CalendarViewKey(user.User))
	return entry, nil
}

// DeleteEntry removes the image rows and the entry row in one transaction,
// then removes the objects best effort. A failed object remove never blocks
// the user visible delete, the paths go to the orphan queue instead.
func (l *EntryLogic) DeleteEntry(id string) error {
	user := l.GetUserInfo()
	if user.User == "" {
		return errors.New("EntryLogic.DeleteEntry.auth", i18n.ERROR_UNAUTHORIZED, nil).Code(http.StatusUnauthorized)
	}

	entry, err := l.core.Store().EntryStore().GetEntry(l.ctx, user.User, id)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("EntryLogic.DeleteEntry.EntryStore.GetEntry", i18n.ERROR_INTERNAL, err)
	}
	if entry == nil {
		return errors.New("EntryLogic.DeleteEntry.EntryStore.GetEntry.nil", i18n.ERROR_NOTFOUND, err).Code(http.StatusNotFound)
	}

	paths, err := l.core.Store().EntryImageStore().ListPaths(l.ctx, id)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("EntryLogic.DeleteEntry.EntryImageStore.ListPaths", i18n.ERROR_INTERNAL, err)
	}

	err = l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().EntryImageStore().DeleteByEntry(ctx, id); err != nil {
			return errors.New("EntryLogic.DeleteEntry.EntryImageStore.DeleteByEntry", i18n.ERROR_INTERNAL, err)
		}

		if err := l.core.Store().EntryStore().Delete(ctx, id); err != nil {
			return errors.New("EntryLogic.DeleteEntry.EntryStore.Delete", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
	if err != nil {
		return errors.Trace("EntryLogic.DeleteEntry", err)
	}

	l.removeObjects(paths)

	l.core.Metrics().EntryDeleted()
	l.core.Srv().Views().Invalidate(srv.DateViewKey(user.User, entry.HappenedOn), srv.CalendarViewKey(user.User))
	return nil
}

func (l *EntryLogic) removeObjects(paths []string) {
	if len(paths) == 0 {
		return
	}

	go safe.Run(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()

		err := l.core.FileStorage().BatchDeleteFiles(ctx, paths)
		if err == nil {
			return
		}
		slog.Error("Failed to remove entry objects, queueing for reconcile", slog.Any("paths", paths), slog.String("error", err.Error()))

		for _, path := range paths {
			l.core.Metrics().OrphanQueued()
			if err := l.core.Store().OrphanObjectStore().Create(ctx, types.OrphanObject{StoragePath: path}); err != nil {
				slog.Error("Failed to queue orphan object", slog.String("path", path), slog.String("error", err.Error()))
			}
		}
	})
}
