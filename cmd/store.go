// store.go handles lazy store/handler initialisation shared across
// commands.
//
// Design: the store is expensive to open (creates the schema, sets WAL
// pragmas) and every command that touches tag data needs the same one,
// so it's created once via sync.Once and closed by Execute once the
// command returns, the same shape the teacher uses for its document service.
package cmd

import (
	"sync"

	"github.com/jamesblissett/tagfs/internal/fshandler"
	"github.com/jamesblissett/tagfs/internal/log"
	"github.com/jamesblissett/tagfs/internal/store"
	"github.com/jamesblissett/tagfs/internal/tagging"
)

var (
	storeOnce sync.Once
	storeErr  error
	theStore  *store.SQLiteStore
	handler   *fshandler.Handler
	service   *tagging.Service
)

// Service opens (once per process) the store at Database() and returns a
// tagging.Service backed by it, along with its fshandler.Handler.
func Service() (*tagging.Service, *fshandler.Handler, error) {
	storeOnce.Do(func() {
		path := Database()
		s, err := store.Open(path)
		if err != nil {
			storeErr = err
			return
		}
		if err := s.Init(); err != nil {
			storeErr = err
			return
		}

		log.SetStore(path)

		theStore = s
		handler = fshandler.New(s, fshandler.DefaultNames(), CaseFold())
		service = tagging.New(s, handler)
	})
	return service, handler, storeErr
}

// closeStore closes the store if one was opened during this process.
func closeStore() {
	if theStore != nil {
		_ = theStore.Close()
	}
}
