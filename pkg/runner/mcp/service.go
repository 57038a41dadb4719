// Package mcp provides the Model Context Protocol server integration for spreads.
package mcp

import (
	"context"
	"errors"
	"strings"
	"time"

	"tableflip.dev/spreads/pkg/app"
	"tableflip.dev/spreads/pkg/engine"
	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/glyph"
	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/spread"
	"tableflip.dev/spreads/pkg/timeutil"
)

// Service adapts the journal operations to transport-friendly values for the
// MCP server.
type Service struct {
	App *app.Service
}

var errNoApp = errors.New("journal is not configured")

// SpreadDTO is a transport-friendly projection of a spread.
type SpreadDTO struct {
	ID        string `json:"id"`
	Period    string `json:"period"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Created   string `json:"created"`
}

// EntryDTO is a transport-friendly projection of a task, note or event.
type EntryDTO struct {
	ID            string `json:"id"`
	Kind          string `json:"kind"`
	Title         string `json:"title"`
	Content       string `json:"content,omitempty"`
	Status        string `json:"status,omitempty"`
	StatusSymbol  string `json:"statusSymbol"`
	StatusMeaning string `json:"statusMeaning"`
	Period        string `json:"period,omitempty"`
	Date          string `json:"date,omitempty"`
	StartDate     string `json:"startDate,omitempty"`
	EndDate       string `json:"endDate,omitempty"`
	Spread        string `json:"spread,omitempty"`
	CompletedAt   string `json:"completedAt,omitempty"`
	Created       string `json:"created"`
}

// MoveDTO records where a deletion moved an entry. Spread is empty for the
// Inbox.
type MoveDTO struct {
	Entry  EntryDTO `json:"entry"`
	Spread string   `json:"spread,omitempty"`
}

// CreateSpreadOptions captures the parameters used to create a spread.
type CreateSpreadOptions struct {
	Period string
	Date   string
	End    string
	Preset string
}

// AddEntryOptions captures the parameters used to create an entry.
type AddEntryOptions struct {
	Kind    string
	Title   string
	Content string
	Period  string
	Date    string
	End     string
}

// NewService builds a service wrapper around the journal.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

func (s *Service) ready() error {
	if s == nil || s.App == nil {
		return errNoApp
	}
	return nil
}

func (s *Service) date(raw string) (time.Time, error) {
	return timeutil.ParseDate(raw, s.App.Today(), s.App.Calendar)
}

// ListSpreads returns every spread in hierarchy order.
func (s *Service) ListSpreads(ctx context.Context) ([]SpreadDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	all, err := s.App.Spreads(ctx)
	if err != nil {
		return nil, err
	}
	return s.spreadDTOs(all), nil
}

// TreeDTO mirrors engine.Tree with spread projections.
type TreeDTO struct {
	Years    []YearDTO `json:"years"`
	Selected string    `json:"selected,omitempty"`
}

type YearDTO struct {
	Year   int        `json:"year"`
	Spread *SpreadDTO `json:"spread,omitempty"`
	Months []MonthDTO `json:"months"`
}

type MonthDTO struct {
	Month  string      `json:"month"`
	Spread *SpreadDTO  `json:"spread,omitempty"`
	Items  []SpreadDTO `json:"items"`
}

// Tree returns the navigation hierarchy and the spread to open for on.
func (s *Service) Tree(ctx context.Context, on string) (TreeDTO, error) {
	if err := s.ready(); err != nil {
		return TreeDTO{}, err
	}
	day, err := s.date(on)
	if err != nil {
		return TreeDTO{}, err
	}
	result, err := s.App.Tree(ctx, day)
	if err != nil {
		return TreeDTO{}, err
	}
	out := TreeDTO{Years: make([]YearDTO, 0, len(result.Tree.Years))}
	if result.Selected != nil {
		out.Selected = result.Selected.ID
	}
	for _, y := range result.Tree.Years {
		yd := YearDTO{Year: y.Year, Spread: s.optionalSpread(y.Spread), Months: make([]MonthDTO, 0, len(y.Months))}
		for _, m := range y.Months {
			yd.Months = append(yd.Months, MonthDTO{
				Month:  m.Month.String(),
				Spread: s.optionalSpread(m.Spread),
				Items:  s.spreadDTOs(m.Items),
			})
		}
		out.Years = append(out.Years, yd)
	}
	return out, nil
}

// CreateSpread creates a spread, or a preset multiday spread, and returns the
// Inbox entries it adopted.
func (s *Service) CreateSpread(ctx context.Context, opts CreateSpreadOptions) (SpreadDTO, []EntryDTO, error) {
	if err := s.ready(); err != nil {
		return SpreadDTO{}, nil, err
	}
	var (
		result app.CreateResult
		err    error
	)
	if strings.TrimSpace(opts.Preset) != "" {
		preset, perr := spread.ParsePreset(opts.Preset)
		if perr != nil {
			return SpreadDTO{}, nil, perr
		}
		result, err = s.App.CreatePreset(ctx, preset)
	} else {
		req, rerr := s.request(opts)
		if rerr != nil {
			return SpreadDTO{}, nil, rerr
		}
		result, err = s.App.CreateSpread(ctx, req)
	}
	if err != nil {
		return SpreadDTO{}, nil, err
	}
	adopted := make([]EntryDTO, 0, len(result.Adopted))
	for _, e := range result.Adopted {
		adopted = append(adopted, s.entryDTO(e, "", result.Spread))
	}
	return s.spreadDTO(result.Spread), adopted, nil
}

func (s *Service) request(opts CreateSpreadOptions) (spread.Request, error) {
	p, err := period.Parse(opts.Period)
	if err != nil {
		return spread.Request{}, err
	}
	date, err := s.date(opts.Date)
	if err != nil {
		return spread.Request{}, err
	}
	req := spread.Request{Period: p, Date: date}
	if p == period.Multiday {
		if strings.TrimSpace(opts.End) == "" {
			return spread.Request{}, errors.New("end is required for multiday spreads")
		}
		if req.End, err = s.date(opts.End); err != nil {
			return spread.Request{}, err
		}
	}
	return req, nil
}

// DeleteSpread removes a spread and reports where its entries went.
func (s *Service) DeleteSpread(ctx context.Context, ref string) (SpreadDTO, []MoveDTO, error) {
	if err := s.ready(); err != nil {
		return SpreadDTO{}, nil, err
	}
	sp, err := s.App.Resolve(ctx, ref)
	if err != nil {
		return SpreadDTO{}, nil, err
	}
	plan, err := s.App.DeleteSpread(ctx, sp.ID)
	if err != nil {
		return SpreadDTO{}, nil, err
	}
	moves := make([]MoveDTO, 0, len(plan.Affected))
	for _, r := range plan.Affected {
		m := MoveDTO{Entry: s.entryDTO(r.Entry, "", r.To)}
		if r.To != nil {
			m.Spread = r.To.ID
		}
		moves = append(moves, m)
	}
	return s.spreadDTO(plan.Spread), moves, nil
}

// AddEntry creates a task, note or event. Tasks and notes are assigned to
// the best matching spread or left in the Inbox.
func (s *Service) AddEntry(ctx context.Context, opts AddEntryOptions) (EntryDTO, error) {
	if err := s.ready(); err != nil {
		return EntryDTO{}, err
	}
	kind := entry.KindTask
	if strings.TrimSpace(opts.Kind) != "" {
		k, err := entry.ParseKind(opts.Kind)
		if err != nil {
			return EntryDTO{}, err
		}
		kind = k
	}
	on, err := s.date(opts.Date)
	if err != nil {
		return EntryDTO{}, err
	}

	if kind == entry.KindEvent {
		end := on
		if strings.TrimSpace(opts.End) != "" {
			if end, err = s.date(opts.End); err != nil {
				return EntryDTO{}, err
			}
		}
		ev, err := s.App.AddEvent(ctx, opts.Title, on, end)
		if err != nil {
			return EntryDTO{}, err
		}
		return s.entryDTO(ev, "", nil), nil
	}

	p := period.Day
	if strings.TrimSpace(opts.Period) != "" {
		if p, err = period.Parse(opts.Period); err != nil {
			return EntryDTO{}, err
		}
	}
	var placed app.Placement
	if kind == entry.KindNote {
		placed, err = s.App.AddNote(ctx, opts.Title, opts.Content, p, on)
	} else {
		placed, err = s.App.AddTask(ctx, opts.Title, p, on)
	}
	if err != nil {
		return EntryDTO{}, err
	}
	return s.entryDTO(placed.Entry, "", placed.Spread), nil
}

// SetTaskStatus completes, cancels or reopens a task.
func (s *Service) SetTaskStatus(ctx context.Context, id, action string) (EntryDTO, error) {
	if err := s.ready(); err != nil {
		return EntryDTO{}, err
	}
	var (
		t   *entry.Task
		err error
	)
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "complete":
		t, err = s.App.Complete(ctx, id)
	case "cancel":
		t, err = s.App.Cancel(ctx, id)
	case "reopen":
		t, err = s.App.Reopen(ctx, id)
	default:
		return EntryDTO{}, errors.New("action must be complete, cancel or reopen")
	}
	if err != nil {
		return EntryDTO{}, err
	}
	return s.withSpread(ctx, t)
}

// MigrateEntry moves a task or note between two spread contexts given as
// spread ids or names.
func (s *Service) MigrateEntry(ctx context.Context, id, from, to string) (EntryDTO, error) {
	if err := s.ready(); err != nil {
		return EntryDTO{}, err
	}
	src, err := s.App.TargetOf(ctx, from)
	if err != nil {
		return EntryDTO{}, err
	}
	dst, err := s.App.TargetOf(ctx, to)
	if err != nil {
		return EntryDTO{}, err
	}
	moved, err := s.App.Migrate(ctx, id, src, dst)
	if err != nil {
		return EntryDTO{}, err
	}
	return s.withSpread(ctx, moved)
}

// BatchDTO is the outcome of a batch migration.
type BatchDTO struct {
	Spread   SpreadDTO             `json:"spread"`
	Migrated []EntryDTO            `json:"migrated"`
	Failed   []engine.BatchFailure `json:"failed"`
}

// MigrateBatch brings open tasks from ancestor spreads onto a spread.
func (s *Service) MigrateBatch(ctx context.Context, ref string, ids []string) (BatchDTO, error) {
	if err := s.ready(); err != nil {
		return BatchDTO{}, err
	}
	sp, err := s.App.Resolve(ctx, ref)
	if err != nil {
		return BatchDTO{}, err
	}
	result, err := s.App.MigrateBatch(ctx, sp.ID, ids)
	if err != nil {
		return BatchDTO{}, err
	}
	out := BatchDTO{Spread: s.spreadDTO(sp), Migrated: make([]EntryDTO, 0, len(result.Migrated)), Failed: result.Failed}
	for _, t := range result.Migrated {
		out.Migrated = append(out.Migrated, s.entryDTO(t, "", sp))
	}
	return out, nil
}

// Inbox lists the tasks and notes that have no spread.
func (s *Service) Inbox(ctx context.Context) ([]EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	list, err := s.App.Inbox(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]EntryDTO, 0, len(list))
	for _, e := range list {
		out = append(out, s.entryDTO(e, "", nil))
	}
	return out, nil
}

// SpreadEntries lists the entries shown on a spread.
func (s *Service) SpreadEntries(ctx context.Context, ref, mode string) (SpreadDTO, []EntryDTO, error) {
	if err := s.ready(); err != nil {
		return SpreadDTO{}, nil, err
	}
	m, err := engine.ParseMode(mode)
	if err != nil {
		return SpreadDTO{}, nil, err
	}
	sp, err := s.App.Resolve(ctx, ref)
	if err != nil {
		return SpreadDTO{}, nil, err
	}
	_, views, err := s.App.View(ctx, sp.ID, m)
	if err != nil {
		return SpreadDTO{}, nil, err
	}
	out := make([]EntryDTO, 0, len(views))
	for _, v := range views {
		out = append(out, s.entryDTO(v.Entry, v.Status, sp))
	}
	return s.spreadDTO(sp), out, nil
}

// MultidayEntries aggregates the entries covered by a multiday spread.
func (s *Service) MultidayEntries(ctx context.Context, ref string) (SpreadDTO, []EntryDTO, error) {
	if err := s.ready(); err != nil {
		return SpreadDTO{}, nil, err
	}
	sp, err := s.App.Resolve(ctx, ref)
	if err != nil {
		return SpreadDTO{}, nil, err
	}
	_, entries, err := s.App.Multiday(ctx, sp.ID)
	if err != nil {
		return SpreadDTO{}, nil, err
	}
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, s.entryDTO(e, "", nil))
	}
	return s.spreadDTO(sp), out, nil
}

// EntryByID locates any entry, cancelled tasks included.
func (s *Service) EntryByID(ctx context.Context, id string) (EntryDTO, error) {
	if err := s.ready(); err != nil {
		return EntryDTO{}, err
	}
	if strings.TrimSpace(id) == "" {
		return EntryDTO{}, errors.New("id is required")
	}
	e, err := s.App.Entry(ctx, id)
	if err != nil {
		return EntryDTO{}, err
	}
	return s.withSpread(ctx, e)
}

func (s *Service) withSpread(ctx context.Context, e entry.Entry) (EntryDTO, error) {
	a, ok := e.(entry.Assignable)
	if !ok {
		return s.entryDTO(e, "", nil), nil
	}
	snap, err := s.App.Snapshot(ctx)
	if err != nil {
		return EntryDTO{}, err
	}
	_, sp, _ := engine.CurrentAssignment(a, snap.Spreads, s.App.Calendar)
	return s.entryDTO(e, "", sp), nil
}

func (s *Service) spreadDTOs(list []*spread.Spread) []SpreadDTO {
	out := make([]SpreadDTO, 0, len(list))
	for _, sp := range list {
		out = append(out, s.spreadDTO(sp))
	}
	return out
}

func (s *Service) optionalSpread(sp *spread.Spread) *SpreadDTO {
	if sp == nil {
		return nil
	}
	dto := s.spreadDTO(sp)
	return &dto
}

func (s *Service) spreadDTO(sp *spread.Spread) SpreadDTO {
	cal := s.App.Calendar
	dto := SpreadDTO{
		ID:      sp.ID,
		Period:  sp.Period.String(),
		Title:   sp.Title(cal),
		Date:    formatDate(cal, sp.Date),
		Created: entry.FormatTime(sp.Created.Time),
	}
	if sp.IsMultiday() {
		dto.StartDate = formatDate(cal, sp.Start())
		dto.EndDate = formatDate(cal, sp.End(cal))
	}
	return dto
}

// entryDTO projects e. An empty status falls back to the entry's own status;
// sp, when set, is reported as the entry's spread.
func (s *Service) entryDTO(e entry.Entry, status entry.Status, sp *spread.Spread) EntryDTO {
	cal := s.App.Calendar
	dto := EntryDTO{
		ID:      e.EntryID(),
		Kind:    string(e.EntryKind()),
		Title:   e.EntryTitle(),
		Created: entry.FormatTime(e.CreatedAt()),
	}
	if sp != nil && !sp.IsMultiday() {
		dto.Spread = sp.ID
	}
	switch v := e.(type) {
	case *entry.Task:
		if !v.CompletedAt.IsZero() {
			dto.CompletedAt = entry.FormatTime(v.CompletedAt.Time)
		}
	case *entry.Note:
		dto.Content = v.Content
	case *entry.Event:
		dto.StartDate = formatDate(cal, v.StartDate)
		dto.EndDate = formatDate(cal, v.EndDate)
	}
	if a, ok := e.(entry.Assignable); ok {
		if status == "" {
			status = a.CurrentStatus()
		}
		p, date := a.Preferred()
		dto.Status = string(status)
		dto.Period = p.String()
		dto.Date = formatDate(cal, date)
	}
	g := glyph.For(e.EntryKind(), status)
	dto.StatusSymbol = g.Symbol
	dto.StatusMeaning = g.Meaning
	return dto
}

func formatDate(cal period.Calendar, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return cal.In(t).Format("2006-01-02")
}
