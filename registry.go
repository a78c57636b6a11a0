package ksrt

import (
	"fmt"
	"time"

	"github.com/riferrei/srclient"
	"github.com/tryfix/errors"
	"github.com/tryfix/log"
)

// Client is the subset of the schema registry client surface this tool
// needs. Both srclient.SchemaRegistryClient and its mock satisfy it.
type Client interface {
	GetLatestSchema(subject string) (*srclient.Schema, error)
	CreateSchema(subject string, schema string, schemaType srclient.SchemaType, references ...srclient.Reference) (*srclient.Schema, error)
}

type options struct {
	logger   log.Logger
	client   Client
	username string
	password string
	timeout  time.Duration
	validate bool
}

// Option is a type to host NewRegistry configurations
type Option func(*options)

// WithLogger returns a configuration to create a NewRegistry with the given
// logger
func WithLogger(logger log.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

// WithMockClient replaces the HTTP client with the given one, typically
// srclient's mock. For tests only.
func WithMockClient(client Client) Option {
	return func(options *options) {
		options.client = client
	}
}

// WithCredentials returns a configuration to authenticate against the
// registry with basic auth
func WithCredentials(username, password string) Option {
	return func(options *options) {
		options.username = username
		options.password = password
	}
}

// WithTimeout returns a configuration to override the client's default
// request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(options *options) {
		options.timeout = timeout
	}
}

// WithSchemaValidation returns a configuration that parse-checks retrieved
// schemas where a parser is available (currently avro only)
func WithSchemaValidation() Option {
	return func(options *options) {
		options.validate = true
	}
}

// Registry wraps a schema registry client with the schema retrieval and
// submission operations of the tool
type Registry struct {
	client  Client
	logger  log.Logger
	options *options
}

// NewRegistry returns a pointer to a Registry for the given registry URL
// with the given options
func NewRegistry(url string, opts ...Option) (*Registry, error) {
	options := new(options)
	for _, opt := range opts {
		opt(options)
	}

	if options.logger == nil {
		options.logger = log.NewNoopLogger()
	}

	client := options.client
	if client == nil {
		c := srclient.NewSchemaRegistryClient(url)
		if options.username != `` {
			c.SetCredentials(options.username, options.password)
		}

		if options.timeout > 0 {
			c.SetTimeout(options.timeout)
		}

		client = c
	}

	r := &Registry{
		client:  client,
		logger:  options.logger,
		options: options,
	}

	return r, nil
}

// GetSchema retrieves the latest registered schema version for the subject
// named by the given strategy.
func (r *Registry) GetSchema(strategy SubjectNameStrategy) (*srclient.Schema, error) {
	subject := strategy.Subject()

	schema, err := r.client.GetLatestSchema(subject)
	if err != nil {
		return nil, errors.WithPrevious(err, fmt.Sprintf(`error retrieving schema for subject %s`, subject))
	}

	r.logger.Debug(`ksrt.registry`, fmt.Sprintf(`retrieved subject %s id %d version %d`, subject, schema.ID(), schema.Version()))

	if r.options.validate {
		if err := r.validateSchema(schema); err != nil {
			return nil, err
		}
	}

	return schema, nil
}

// PostSchema submits the supplied schema under the given subject, creating
// a new version unless an equivalent one is already registered. Every
// reference is registered first, depth-first in declared order, so each
// dependency exists as a named, versioned reference before anything that
// depends on it.
func (r *Registry) PostSchema(subject string, supplied *SuppliedSchema) (*srclient.Schema, error) {
	refs, err := r.registerReferences(supplied.SchemaType, supplied.References)
	if err != nil {
		return nil, err
	}

	schema, err := r.client.CreateSchema(subject, supplied.Schema, supplied.SchemaType, refs...)
	if err != nil {
		return nil, errors.WithPrevious(err, fmt.Sprintf(`error posting schema for subject %s`, subject))
	}

	r.logger.Info(`ksrt.registry`, fmt.Sprintf(`subject %s registered with id %d version %d`, subject, schema.ID(), schema.Version()))

	return schema, nil
}

func (r *Registry) registerReferences(schemaType srclient.SchemaType, refs []SuppliedReference) ([]srclient.Reference, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	registered := make([]srclient.Reference, 0, len(refs))
	for _, ref := range refs {
		nested, err := r.registerReferences(schemaType, ref.References)
		if err != nil {
			return nil, err
		}

		schema, err := r.client.CreateSchema(ref.Subject, ref.Schema, schemaType, nested...)
		if err != nil {
			return nil, errors.WithPrevious(err, fmt.Sprintf(`error registering reference %s under subject %s`, ref.Name, ref.Subject))
		}

		r.logger.Debug(`ksrt.registry`, fmt.Sprintf(`reference %s registered under subject %s version %d`, ref.Name, ref.Subject, schema.Version()))

		registered = append(registered, srclient.Reference{
			Name:    ref.Name,
			Subject: ref.Subject,
			Version: schema.Version(),
		})
	}

	return registered, nil
}
