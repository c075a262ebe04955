package tlexperiment

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/function61/gokit/log/logex"
	"github.com/function61/gokit/os/osutil"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlarchive"
)

// starts a Lambda handler that runs the default comparison grid on a
// CloudWatch schedule and archives the CSV to S3
func LambdaEntrypoint() error {
	rootLogger := logex.StandardLogger()

	lambda.Start(func(ctx context.Context, event events.CloudWatchEvent) error {
		return scheduledComparison(ctx, rootLogger)
	})

	// doesn't reach here
	return nil
}

func scheduledComparison(ctx context.Context, logger *log.Logger) error {
	bucket, err := osutil.GetenvRequired("TEACHLOAD_S3_BUCKET")
	if err != nil {
		return err
	}

	region, err := osutil.GetenvRequired("TEACHLOAD_S3_REGION")
	if err != nil {
		return err
	}

	opts, err := tlarchive.OptionsFromEnv(bucket, region)
	if err != nil {
		return err
	}

	comparison, err := Run(ctx, Options{}, logger)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	if err := comparison.WriteCSV(buf); err != nil {
		return err
	}

	key := fmt.Sprintf("comparisons/comparison_%s.csv", time.Now().Format("20060102_150405"))

	if err := tlarchive.New(opts).PutCSV(ctx, key, bytes.NewReader(buf.Bytes())); err != nil {
		return err
	}

	logex.Levels(logger).Info.Printf("uploaded %s", key)

	return nil
}
