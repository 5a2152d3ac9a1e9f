package receipts

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Options параметры подключения к MinIO
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Storage хранилище чеков об оплате в MinIO
type Storage struct {
	client *minio.Client
	bucket string
	log    Logger
}

// Object содержимое чека; Body нужно закрыть
type Object struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// New подключается к MinIO и создает бакет, если его нет
func New(ctx context.Context, opts Options, log Logger) (*Storage, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create client: %v", ErrStorage, err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%w: check bucket %s: %v", ErrStorage, opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("%w: create bucket %s: %v", ErrStorage, opts.Bucket, err)
		}
		log.Info("Receipts: bucket %s created", opts.Bucket)
	}

	return &Storage{client: client, bucket: opts.Bucket, log: log}, nil
}

// Key строит имя объекта для чека записи и определяет его MIME-тип по расширению файла
func Key(appointmentID uuid.UUID, filename string) (key, contentType string, err error) {
	ext := strings.ToLower(path.Ext(filename))
	contentType, ok := domain.ReceiptContentTypes[ext]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedType, filename)
	}
	return "receipts/" + appointmentID.String() + ext, contentType, nil
}

// Upload сохраняет чек
func (s *Storage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	info, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("%w: put %s: %v", ErrStorage, key, err)
	}

	s.log.Info("Receipts: uploaded %s (%d bytes)", key, info.Size)
	return nil
}

// Open открывает чек для чтения
func (s *Storage) Open(ctx context.Context, key string) (*Object, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrStorage, key, err)
	}

	// GetObject ленивый: отсутствие объекта выясняется только на Stat
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrReceiptNotFound
		}
		return nil, fmt.Errorf("%w: stat %s: %v", ErrStorage, key, err)
	}

	return &Object{Body: obj, Size: stat.Size, ContentType: stat.ContentType}, nil
}

// Remove удаляет чек; используется для отката, если запись не сохранилась
func (s *Storage) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: remove %s: %v", ErrStorage, key, err)
	}
	return nil
}
