package platforms

import (
	"context"
	"errors"

	"github.com/unisave/unisave/internal/services/extractor"
)

// stubRunner plays back canned responses and records how it was called.
type stubRunner struct {
	infos   []*extractor.RawInfo
	errs    []error
	entries []extractor.RawEntry

	calls    int
	lastOpts extractor.Options
	lastURL  string
}

func (s *stubRunner) Dump(ctx context.Context, url string, opts extractor.Options) (*extractor.RawInfo, error) {
	i := s.calls
	s.calls++
	s.lastOpts = opts
	s.lastURL = url
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i < len(s.infos) {
		return s.infos[i], nil
	}
	return nil, errors.New("unexpected call")
}

func (s *stubRunner) DumpEntries(ctx context.Context, url string, opts extractor.Options) ([]extractor.RawEntry, error) {
	s.calls++
	s.lastOpts = opts
	s.lastURL = url
	if len(s.errs) > 0 && s.errs[0] != nil {
		return nil, s.errs[0]
	}
	return s.entries, nil
}

func (s *stubRunner) ResolveURL(ctx context.Context, url, selector string, opts extractor.Options) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubRunner) Download(ctx context.Context, url, selector, outPath string, opts extractor.Options) error {
	return errors.New("not implemented")
}

func (s *stubRunner) Version(ctx context.Context) (string, error) {
	return "2024.03.10", nil
}
