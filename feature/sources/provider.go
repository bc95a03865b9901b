package sources

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"catalog-sync/core/fetch"
	"catalog-sync/core/tabular"
	"catalog-sync/feature/priority"
)

// Provider resolves source configuration.
type Provider struct {
	sources map[string]Config
	getenv  func(string) string
}

// NewProvider creates a provider over the configured sources. Names are matched case-insensitively.
func NewProvider(cfg map[string]Config) *Provider {
	normalized := make(map[string]Config, len(cfg))
	for name, sc := range cfg {
		normalized[strings.ToLower(name)] = sc
	}
	return &Provider{sources: normalized, getenv: os.Getenv}
}

// ForJob returns the view of the sources used by one job.
func (p *Provider) ForJob(job string) *JobProvider {
	return &JobProvider{provider: p, job: job}
}

// Priorities returns the priorities set in configuration.
func (p *Provider) Priorities() priority.StaticTable {
	table := make(priority.StaticTable)
	for name, sc := range p.sources {
		if sc.Priority != nil {
			table[name] = *sc.Priority
		}
	}
	return table
}

// JobProvider resolves sources for a single job.
type JobProvider struct {
	provider *Provider
	job      string
}

// GetRemoteConfig returns the remote location of the job's feed for source, or nil
// when the source is not configured for this job.
func (j *JobProvider) GetRemoteConfig(_ context.Context, source string) (*fetch.RemoteConfig, error) {
	sc, ok := j.provider.sources[strings.ToLower(source)]
	if !ok || sc.Protocol == "" {
		return nil, nil
	}
	path := sc.Paths[j.job]
	if path == "" {
		return nil, nil
	}

	secret := sc.Secret
	if sc.SecretEnv != "" {
		secret = j.provider.getenv(sc.SecretEnv)
		if secret == "" {
			return nil, fmt.Errorf("source %s: environment variable %s is not set", source, sc.SecretEnv)
		}
	}

	return &fetch.RemoteConfig{
		Source:     strings.ToLower(source),
		Protocol:   strings.ToLower(sc.Protocol),
		Host:       sc.Host,
		Port:       sc.Port,
		User:       sc.User,
		Secret:     secret,
		RemotePath: path,
	}, nil
}

// ParseOptions returns the parser options of source.
func (j *JobProvider) ParseOptions(source string) tabular.Options {
	sc := j.provider.sources[strings.ToLower(source)]
	var opts tabular.Options
	if sc.Delimiter != "" {
		r, _ := utf8.DecodeRuneInString(sc.Delimiter)
		if sc.Delimiter == `\t` {
			r = '\t'
		}
		opts.Delimiter = r
	}
	return opts
}

// Columns returns the header overrides of source.
func (j *JobProvider) Columns(source string) map[string]string {
	return j.provider.sources[strings.ToLower(source)].Columns
}
