// Package storage implementa el almacén de evidencias sobre un backend
// compatible con S3 (AWS S3, MinIO...).
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/agrogest/AgroGest-api/internal/application/tarea"
	"github.com/agrogest/AgroGest-api/pkg/config"
	"github.com/agrogest/AgroGest-api/pkg/logger"
)

var _ tarea.AlmacenEvidencias = (*S3Evidencias)(nil)

// S3Evidencias guarda evidencias de tareas en un bucket S3-compatible.
type S3Evidencias struct {
	client *s3.Client
	bucket string
	log    *logger.Logger
}

// NewS3Evidencias construye el almacén a partir de la configuración.
// Funciona contra cualquier backend compatible con S3 (AWS S3, MinIO...).
func NewS3Evidencias(cfg config.StorageConfig, log *logger.Logger) (*S3Evidencias, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage: bucket requerido")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("storage: credenciales requeridas")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "http://localhost:9000"
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("storage: endpoint inválido: %w", err)
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: configuración AWS: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &S3Evidencias{client: client, bucket: cfg.Bucket, log: log}, nil
}

// EnsureBucket crea el bucket si no existe. Llamarlo en el arranque.
func (s *S3Evidencias) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("storage: verificando bucket: %w", err)
	}

	s.log.Info().Str("bucket", s.bucket).Msg("Creando bucket de evidencias")
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		// Carrera con otra instancia creando el mismo bucket
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("storage: creando bucket: %w", err)
	}
	return nil
}

// Guardar sube el contenido bajo la clave dada y devuelve la referencia
// (s3://bucket/clave) con la que queda registrado en la tarea.
func (s *S3Evidencias) Guardar(ctx context.Context, nombre string, contenido []byte, contentType string) (string, error) {
	if nombre == "" {
		return "", errors.New("storage: nombre de objeto requerido")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(nombre),
		Body:        bytes.NewReader(contenido),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: subiendo objeto %s: %w", nombre, err)
	}

	s.log.Debug().Str("bucket", s.bucket).Str("key", nombre).Int("bytes", len(contenido)).Msg("Evidencia almacenada")
	return fmt.Sprintf("s3://%s/%s", s.bucket, nombre), nil
}

// Eliminar borra el objeto; no falla si ya no existe.
func (s *S3Evidencias) Eliminar(ctx context.Context, nombre string) error {
	if nombre == "" {
		return errors.New("storage: nombre de objeto requerido")
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(nombre),
	})
	if err != nil {
		return fmt.Errorf("storage: eliminando objeto %s: %w", nombre, err)
	}
	return nil
}
