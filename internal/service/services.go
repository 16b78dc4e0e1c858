package service

import (
	"github.com/deppfellow/roundtrip/internal/repository"
	"github.com/deppfellow/roundtrip/internal/server"
)

type Services struct {
	TestRecord *TestRecordService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		TestRecord: NewTestRecordService(s, repos.TestRecords),
	}, nil
}
