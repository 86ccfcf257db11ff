package reporter_engines

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"cloud.google.com/go/storage"
	"github.com/gocarina/gocsv"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
	"google.golang.org/api/option"
)

type GCSReporter struct {
	client  *storage.Client
	bucket  string
	prefix  string
	options *common.ReporterEngineOptions
	ctx     context.Context
}

// NewGCSReporter creates a GCS-backed reporter. Without credentials file the default
// application credentials of the environment are used.
func NewGCSReporter(ctx context.Context, bucket string, credentialsFile string, options *common.ReporterEngineOptions) (*GCSReporter, error) {
	clientOptions := make([]option.ClientOption, 0, 1)
	if credentialsFile != "" {
		clientOptions = append(clientOptions, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	prefix := constants.REPORTS_DIRECTORY
	if options.DryRun {
		prefix = path.Join(prefix, constants.DRY_RUN_REPORTS_DIRECTORY)
	}
	return &GCSReporter{
		client:  client,
		bucket:  bucket,
		prefix:  prefix,
		options: options,
		ctx:     ctx,
	}, nil
}

func (engine *GCSReporter) objectPath(name string) string {
	return path.Join(engine.prefix, engine.options.RunId, name)
}

func (engine *GCSReporter) writeObject(objectPath string, data []byte, contentType string) error {
	w := engine.client.Bucket(engine.bucket).Object(objectPath).NewWriter(engine.ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (engine *GCSReporter) ReportPayouts(payouts []common.PayoutReport) error {
	if len(payouts) == 0 {
		return nil
	}
	csvData, err := gocsv.MarshalBytes(sortReports(payouts))
	if err != nil {
		return err
	}
	return engine.writeObject(engine.objectPath(constants.PAYOUT_REPORT_FILE_NAME), csvData, "text/csv")
}

func (engine *GCSReporter) ReportSummary(summary *common.PayoutSummaryReport) error {
	data, err := json.MarshalIndent(summary, "", "\t")
	if err != nil {
		return err
	}
	return engine.writeObject(engine.objectPath(constants.REPORT_SUMMARY_FILE_NAME), data, "application/json")
}

func (engine *GCSReporter) Close() error {
	return engine.client.Close()
}
