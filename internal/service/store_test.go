package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sumire/taskboard/internal/domain"
)

// memStore is an in-memory implementation of the service store interfaces.
// Each method takes the lock once, so the read-count-then-insert sequence in
// the services still spans two calls, same as with the real database.
type memStore struct {
	mu       sync.Mutex
	lastIDMu sync.Mutex
	lastID   int64
	now      time.Time
	projects map[int64]domain.Project
	lists    map[int64]domain.BoardList
	tasks    map[int64]domain.Task
	logs     []domain.TaskLog
	members  []domain.ProjectMember
}

func newMemStore() *memStore {
	return &memStore{
		now:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		projects: map[int64]domain.Project{},
		lists:    map[int64]domain.BoardList{},
		tasks:    map[int64]domain.Task{},
	}
}

func (m *memStore) nextID() int64 {
	m.lastIDMu.Lock()
	defer m.lastIDMu.Unlock()
	m.lastID++
	return m.lastID
}

// tick returns a strictly increasing timestamp so ordering by created_at is
// deterministic. Callers must hold m.mu.
func (m *memStore) tick() time.Time {
	m.now = m.now.Add(time.Second)
	return m.now
}

func (m *memStore) CreateWithLists(_ context.Context, name string, description *string, listNames []string) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ts := m.tick()
	p := domain.Project{ID: m.nextID(), Name: name, Description: description, CreatedAt: ts, UpdatedAt: ts}
	m.projects[p.ID] = p

	for i, listName := range listNames {
		l := domain.BoardList{ID: m.nextID(), ProjectID: p.ID, Name: listName, Position: i, CreatedAt: ts}
		m.lists[l.ID] = l
	}
	return &p, nil
}

func (m *memStore) FindByID(_ context.Context, id int64) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (m *memStore) List(_ context.Context) ([]domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) Update(_ context.Context, id int64, name string, description *string) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Name = name
	p.Description = description
	p.UpdatedAt = m.tick()
	m.projects[id] = p
	return &p, nil
}

func (m *memStore) DeleteTree(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.projects[id]; !ok {
		return domain.ErrNotFound
	}
	for listID, l := range m.lists {
		if l.ProjectID != id {
			continue
		}
		m.deleteListTreeLocked(listID)
	}
	kept := m.members[:0]
	for _, mem := range m.members {
		if mem.ProjectID != id {
			kept = append(kept, mem)
		}
	}
	m.members = kept
	delete(m.projects, id)
	return nil
}

func (m *memStore) deleteListTreeLocked(listID int64) {
	for taskID, t := range m.tasks {
		if t.ListID != listID {
			continue
		}
		m.deleteTaskLogsLocked(taskID)
		delete(m.tasks, taskID)
	}
	delete(m.lists, listID)
}

func (m *memStore) deleteTaskLogsLocked(taskID int64) {
	kept := m.logs[:0]
	for _, l := range m.logs {
		if l.TaskID != taskID {
			kept = append(kept, l)
		}
	}
	m.logs = kept
}

// BoardListStore

type memListStore struct{ *memStore }

func (m memListStore) Create(_ context.Context, l domain.BoardList) (*domain.BoardList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l.ID = m.nextID()
	l.CreatedAt = m.tick()
	m.lists[l.ID] = l
	return &l, nil
}

func (m memListStore) FindByID(_ context.Context, id int64) (*domain.BoardList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.lists[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &l, nil
}

func (m memListStore) ListByProject(_ context.Context, projectID int64) ([]domain.BoardList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []domain.BoardList{}
	for _, l := range m.lists {
		if l.ProjectID == projectID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m memListStore) CountByProject(_ context.Context, projectID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, l := range m.lists {
		if l.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}

func (m memListStore) Update(_ context.Context, id int64, name string, position int) (*domain.BoardList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.lists[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	l.Name = name
	l.Position = position
	m.lists[id] = l
	return &l, nil
}

func (m memListStore) DeleteTree(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.lists[id]; !ok {
		return domain.ErrNotFound
	}
	m.deleteListTreeLocked(id)
	return nil
}

// TaskStore

type memTaskStore struct{ *memStore }

func (m memTaskStore) CreateWithLog(_ context.Context, t domain.Task, logMessage string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ts := m.tick()
	t.ID = m.nextID()
	t.CreatedAt = ts
	t.UpdatedAt = ts
	m.tasks[t.ID] = t
	m.logs = append(m.logs, domain.TaskLog{ID: m.nextID(), TaskID: t.ID, Message: logMessage, CreatedAt: ts})
	return &t, nil
}

func (m memTaskStore) FindByID(_ context.Context, id int64) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (m memTaskStore) ListByList(_ context.Context, listID int64, filter domain.TaskFilter) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []domain.Task{}
	for _, t := range m.tasks {
		if t.ListID != listID {
			continue
		}
		if filter.CreatedAfter != nil && t.CreatedAt.Before(*filter.CreatedAfter) {
			continue
		}
		if filter.UpdatedAfter != nil && t.UpdatedAt.Before(*filter.UpdatedAfter) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m memTaskStore) CountByList(_ context.Context, listID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.tasks {
		if t.ListID == listID {
			n++
		}
	}
	return n, nil
}

func (m memTaskStore) UpdateWithLog(_ context.Context, t domain.Task, logMessage *string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.tasks[t.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	current.Title = t.Title
	current.Description = t.Description
	current.Position = t.Position
	current.ListID = t.ListID
	current.UpdatedAt = m.tick()
	m.tasks[t.ID] = current

	if logMessage != nil {
		m.logs = append(m.logs, domain.TaskLog{ID: m.nextID(), TaskID: t.ID, Message: *logMessage, CreatedAt: current.UpdatedAt})
	}
	return &current, nil
}

func (m memTaskStore) DeleteTree(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return domain.ErrNotFound
	}
	m.deleteTaskLogsLocked(id)
	delete(m.tasks, id)
	return nil
}

func (m memTaskStore) ListLogs(_ context.Context, taskID int64) ([]domain.TaskLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []domain.TaskLog{}
	for _, l := range m.logs {
		if l.TaskID == taskID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// MemberStore

type memMemberStore struct{ *memStore }

func (m memMemberStore) Find(_ context.Context, projectID, userID int64) (*domain.ProjectMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, mem := range m.members {
		if mem.ProjectID == projectID && mem.UserID == userID {
			return &mem, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m memMemberStore) Insert(_ context.Context, projectID, userID int64) (*domain.ProjectMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mem := domain.ProjectMember{ID: m.nextID(), ProjectID: projectID, UserID: userID, JoinedAt: m.tick()}
	m.members = append(m.members, mem)
	return &mem, nil
}

func (m memMemberStore) Delete(_ context.Context, projectID, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, mem := range m.members {
		if mem.ProjectID == projectID && mem.UserID == userID {
			m.members = append(m.members[:i], m.members[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m memMemberStore) ListByProject(_ context.Context, projectID int64) ([]domain.ProjectMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []domain.ProjectMember{}
	for _, mem := range m.members {
		if mem.ProjectID == projectID {
			out = append(out, mem)
		}
	}
	return out, nil
}
