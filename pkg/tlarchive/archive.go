// Report archival to S3. Generated workbooks are uploaded under
// reports/<academic year>/<filename> so one year's batch stays together.
package tlarchive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/function61/gokit/os/osutil"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvContentType  = "text/csv"
)

type Options struct {
	AccessKeyId     string // AWS_ACCESS_KEY_ID
	AccessKeySecret string // AWS_SECRET_ACCESS_KEY
	AccessKeyToken  string // AWS_SESSION_TOKEN (only needed in Lambda)
	RegionId        string
	BucketName      string
}

// bucket and region come from the environment's config file, credentials
// from the conventional AWS environment variables
func OptionsFromEnv(bucketName string, regionId string) (Options, error) {
	if bucketName == "" {
		return Options{}, errors.New("report archival not configured (s3_bucket is empty)")
	}

	accessKeyId, err := osutil.GetenvRequired("AWS_ACCESS_KEY_ID")
	if err != nil {
		return Options{}, err
	}

	accessKeySecret, err := osutil.GetenvRequired("AWS_SECRET_ACCESS_KEY")
	if err != nil {
		return Options{}, err
	}

	return Options{
		AccessKeyId:     accessKeyId,
		AccessKeySecret: accessKeySecret,
		AccessKeyToken:  os.Getenv("AWS_SESSION_TOKEN"),
		RegionId:        regionId,
		BucketName:      bucketName,
	}, nil
}

type Archive struct {
	bucketName string
	s3Client   *s3.S3
}

func New(opts Options) *Archive {
	sess, err := session.NewSession()
	if err != nil {
		panic(err)
	}

	staticCreds := credentials.NewStaticCredentials(
		opts.AccessKeyId,
		opts.AccessKeySecret,
		opts.AccessKeyToken)

	s3Client := s3.New(
		sess,
		aws.NewConfig().WithCredentials(staticCreds).WithRegion(opts.RegionId))

	return &Archive{opts.BucketName, s3Client}
}

// the year is sometimes written "2024/2025", which would nest the key one
// level deeper than intended
func ReportKey(academicYear string, filename string) string {
	return fmt.Sprintf("reports/%s/%s", strings.ReplaceAll(academicYear, "/", "-"), filename)
}

// uploads the workbook and returns the object key it was stored under
func (a *Archive) ArchiveReport(
	ctx context.Context,
	academicYear string,
	filename string,
	workbook *excelize.File,
) (string, error) {
	key := ReportKey(academicYear, filename)

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		return "", fmt.Errorf("ArchiveReport: %w", err)
	}

	if _, err := a.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      &a.bucketName,
		Key:         &key,
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(xlsxContentType),
	}); err != nil {
		return "", fmt.Errorf("ArchiveReport %s: %w", key, err)
	}

	return key, nil
}

func (a *Archive) PutCSV(ctx context.Context, key string, body io.ReadSeeker) error {
	if _, err := a.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      &a.bucketName,
		Key:         &key,
		Body:        body,
		ContentType: aws.String(csvContentType),
	}); err != nil {
		return fmt.Errorf("PutCSV %s: %w", key, err)
	}

	return nil
}
