package repomanager

import (
	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/repositories/auditlog"
	"github.com/dmitrijs2005/authgate/internal/repositories/identities"
)

// FileManager keeps identities and the audit log in two plain text files.
type FileManager struct {
	identities *identities.FileRepository
	auditLog   *auditlog.FileRepository
}

func NewFileManager(usersPath, auditPath string, logger logging.Logger) *FileManager {
	return &FileManager{
		identities: identities.NewFileRepository(usersPath, logger),
		auditLog:   auditlog.NewFileRepository(auditPath),
	}
}

func (m *FileManager) Identities() identities.Repository { return m.identities }

func (m *FileManager) AuditLog() auditlog.Repository { return m.auditLog }

func (m *FileManager) Close() error { return nil }
