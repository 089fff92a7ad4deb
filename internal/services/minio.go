package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// UploadProductImage pousse un fichier multipart vers MinIO et retourne
// le chemin relatif stocké avec le produit.
func UploadProductImage(ctx context.Context, client *minio.Client, bucket string, file *multipart.FileHeader) (string, error) {
	if client == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	ext := filepath.Ext(file.Filename)
	objectName := fmt.Sprintf("products/%s%s", uuid.NewString(), ext)

	_, err = client.PutObject(ctx, bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	return "/uploads/" + objectName, nil
}

// GenerateSignedURL génère une URL signée avec expiration pour un objet
// stocké sous son chemin relatif /uploads/<key>.
func GenerateSignedURL(ctx context.Context, client *minio.Client, bucket, objectPath string, duration time.Duration) (string, error) {
	if client == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	key := objectPath
	if len(key) > 9 && key[:9] == "/uploads/" {
		key = key[9:]
	}

	presigned, err := client.PresignedGetObject(ctx, bucket, key, duration, make(url.Values))
	if err != nil {
		return "", err
	}
	return presigned.String(), nil
}
