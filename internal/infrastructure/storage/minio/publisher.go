package minio

import (
	"bytes"
	"context"
	"os"
	"path"

	"github.com/solhycool/visualizations/internal/domain/artifact"
	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/logging"
	"github.com/solhycool/visualizations/pkg/errors"
)

// Object layout under the prefix.
const (
	DiagramsFolder     = "diagrams"
	IndexObject        = "results.json"
	ContentTypeSVG     = "image/svg+xml"
	ContentTypeJSON    = "application/json"
	metaRunID          = "run-id"
	metaCondition      = "condition"
	metaOperatingPoint = "point"
)

// Publisher uploads artifacts to the bucket.
type Publisher struct {
	client *MinIOClient
	logger logging.Logger
}

// NewPublisher creates a Publisher.
func NewPublisher(client *MinIOClient, log logging.Logger) *Publisher {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Publisher{client: client, logger: log}
}

func (p *Publisher) Name() string { return "minio" }

// PublishDiagram uploads the diagram file as diagrams/<filename>.
func (p *Publisher) PublishDiagram(ctx context.Context, runID string, d artifact.Diagram) error {
	data, err := os.ReadFile(d.Path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeIO, "read diagram for upload").WithDetail(d.Path)
	}
	name := path.Join(DiagramsFolder, d.Filename())
	_, err = p.client.Put(ctx, name, bytes.NewReader(data), int64(len(data)), ContentTypeSVG, map[string]string{
		metaRunID:          runID,
		metaCondition:      d.Condition,
		metaOperatingPoint: d.Point,
	})
	if err != nil {
		return err
	}
	p.logger.Debug("diagram uploaded", logging.String("object", p.client.ObjectName(name)))
	return nil
}

// PublishIndex uploads the consolidated index.
func (p *Publisher) PublishIndex(ctx context.Context, runID string, idx artifact.Index) error {
	_, err := p.client.Put(ctx, IndexObject, bytes.NewReader(idx.Data), int64(len(idx.Data)), ContentTypeJSON, map[string]string{
		metaRunID: runID,
	})
	if err != nil {
		return err
	}
	p.logger.Debug("index uploaded", logging.String("object", p.client.ObjectName(IndexObject)))
	return nil
}

func (p *Publisher) Close() error { return p.client.Close() }

var _ artifact.Publisher = (*Publisher)(nil)

//Personal.AI order the ending
