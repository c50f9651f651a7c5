package mockservice

import (
	"github.com/Prototype-Group/sidekick/internal/mockservice/inbound"
	"github.com/Prototype-Group/sidekick/internal/mockservice/store"
	"github.com/Prototype-Group/sidekick/internal/pkg/pkgconfig"
	"github.com/Prototype-Group/sidekick/internal/pkg/pkgrouter"
	"github.com/Prototype-Group/sidekick/internal/pkg/pkguid"
)

// Dependency carries everything the mock service module needs from the
// application shell.
type Dependency struct {
	Config    pkgconfig.Config
	Router    *pkgrouter.Router
	WrapperID pkguid.StringID
	UploadID  pkguid.NumberID
}

// New wires the mock dataset service and mounts its endpoints.
func New(dep Dependency) error {
	if dep.UploadID == nil {
		sf, err := pkguid.NewSnowflake()
		if err != nil {
			return err
		}
		dep.UploadID = sf
	}
	if dep.WrapperID == nil {
		dep.WrapperID = pkguid.NewUUID()
	}

	storage := store.NewInMemoryStore(store.Config{
		SuccessAfter:   int(dep.Config.GetInt("modules.mockservice.success_after")),
		FailSubstrings: dep.Config.GetMap("modules.mockservice.fail_substrings"),
	})

	inbound.RegisterHTTPEndpoint(dep.Router, NewService(storage, dep.WrapperID, dep.UploadID))

	return nil
}
