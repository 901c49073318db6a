package billing

import (
	"sync"
	"time"

	"github.com/facturaec/emision-api/internal/domain"
	"github.com/facturaec/emision-api/internal/domain/entity"
)

// DraftSession sesión de composición de una factura: el borrador estructurado,
// el estado del modo puente, el ciclo de envío y las listas de referencia
// cargadas al abrir la pantalla. Cada sesión pertenece a un único usuario en
// una única pantalla; el mutex protege el acceso desde el handler HTTP y el
// envío en curso.
type DraftSession struct {
	ID        string
	CreatedAt time.Time

	mu     sync.Mutex
	Draft  *entity.InvoiceDraft
	State  string // entity.SubmitState*
	Result *entity.SubmissionResult

	// Modo puente: payload crudo que reemplaza al borrador estructurado en el
	// envío. Alternar el modo no borra ninguno de los dos estados.
	BridgeEnabled bool
	BridgePayload string

	// Listas de referencia. Loaded=false indica lectura fallida (se degrada a
	// lista vacía sin bloquear el resto de la sesión).
	Establishments       []entity.Establishment
	EstablishmentsLoaded bool
	Points               []entity.EmissionPoint
	PointsLoaded         bool
}

// Store registro en memoria de sesiones de borrador, indexado por ID.
// Los borradores no se persisten: viven lo que vive la composición.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*DraftSession
}

// NewStore construye el registro vacío.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*DraftSession)}
}

// Put registra la sesión.
func (s *Store) Put(sess *DraftSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}

// Get devuelve la sesión o ErrNotFound.
func (s *Store) Get(id string) (*DraftSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sess, nil
}

// Delete descarta la sesión. Descartar una sesión inexistente no es un error.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len cantidad de sesiones vivas.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
