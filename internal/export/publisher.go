package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// ObjectPutter is the part of *minio.Client the publisher needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader,
		objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Publisher uploads rendered report sheets to an object storage bucket.
type Publisher struct {
	client ObjectPutter
	bucket string
}

// NewPublisher creates a Publisher writing into bucket.
func NewPublisher(client ObjectPutter, bucket string) *Publisher {
	return &Publisher{client: client, bucket: bucket}
}

// Publish renders every sheet as CSV and uploads it under
// reports/<name>-<uuid>/<sheet>.csv. It returns the object keys in sheet order.
func (p *Publisher) Publish(ctx context.Context, name string, sheets []Sheet) ([]string, error) {
	prefix := fmt.Sprintf("reports/%s-%s", name, uuid.New().String())
	keys := make([]string, 0, len(sheets))
	for _, sheet := range sheets {
		var buf bytes.Buffer
		if err := WriteCSV(&buf, sheet.Table); err != nil {
			return keys, errors.Wrapf(err, "could not render sheet %s", sheet.Name)
		}
		key := prefix + "/" + sheet.Name + ".csv"
		_, err := p.client.PutObject(ctx, p.bucket, key, &buf, int64(buf.Len()),
			minio.PutObjectOptions{ContentType: "text/csv"})
		if err != nil {
			return keys, errors.Wrap(err, "failed to upload to MinIO")
		}
		keys = append(keys, key)
	}
	log.Printf("Published report %s: %d sheets to bucket %s", prefix, len(keys), p.bucket)
	return keys, nil
}
