package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
)

// state - все таблицы хранилища. Внутри транзакции undo собирает обратные операции.
type state struct {
	profiles map[uuid.UUID]entity.Profile
	projects map[uuid.UUID]entity.Project
	bids     map[uuid.UUID]entity.Bid
	orders   map[uuid.UUID]entity.Order

	undo *undoLog
}

func newState() *state {
	return &state{
		profiles: make(map[uuid.UUID]entity.Profile),
		projects: make(map[uuid.UUID]entity.Project),
		bids:     make(map[uuid.UUID]entity.Bid),
		orders:   make(map[uuid.UUID]entity.Order),
	}
}

// undoLog хранит откаты в порядке записи, применяются в обратном.
type undoLog []func()

func (u *undoLog) rollback() {
	for i := len(*u) - 1; i >= 0; i-- {
		(*u)[i]()
	}
	*u = nil
}

// put записывает строку. В транзакции запоминает прежнее значение,
// так что стоимость отката пропорциональна числу измененных строк.
func put[T any](s *state, rows map[uuid.UUID]T, id uuid.UUID, v T) {
	if s.undo != nil {
		prev, existed := rows[id]
		*s.undo = append(*s.undo, func() {
			if existed {
				rows[id] = prev
			} else {
				delete(rows, id)
			}
		})
	}
	rows[id] = v
}

// Store - хранилище в памяти с теми же гарантиями, что и PostgreSQL адаптер:
// транзакции сериализуемы, откат не оставляет следов. Транзакции пишут прямо в таблицы
// под эксклюзивной блокировкой и при ошибке или панике откатываются по undo журналу.
type Store struct {
	mu   sync.RWMutex
	data *state
}

func NewStore() *Store {
	return &Store{data: newState()}
}

// access описывает, как репозиторий получает доступ к состоянию.
type access interface {
	read(fn func(s *state))
	write(fn func(s *state))
}

func (st *Store) read(fn func(s *state)) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	fn(st.data)
}

func (st *Store) write(fn func(s *state)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	fn(st.data)
}

// txAccess используется внутри WithinTx: блокировка уже удерживается транзакцией.
type txAccess struct {
	data *state
}

func (t txAccess) read(fn func(s *state))  { fn(t.data) }
func (t txAccess) write(fn func(s *state)) { fn(t.data) }

func repositoriesFor(a access) repository.Repositories {
	return repository.Repositories{
		Profiles: &profileRepository{db: a},
		Projects: &projectRepository{db: a},
		Bids:     &bidRepository{db: a},
		Orders:   &orderRepository{db: a},
	}
}

func (st *Store) Repositories() repository.Repositories {
	return repositoriesFor(st)
}

func (st *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	undo := &undoLog{}
	st.data.undo = undo
	committed := false
	defer func() {
		st.data.undo = nil
		if !committed {
			undo.rollback()
		}
	}()

	if err := fn(ctx, repositoriesFor(txAccess{data: st.data})); err != nil {
		return err
	}
	committed = true
	return nil
}

func (st *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}
