package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"plantnet_back_end/internal/database"
)

func imageBucket() string {
	if b := os.Getenv("MINIO_BUCKET"); b != "" {
		return b
	}
	return "plants"
}

// UploadImage pousse une image de plante dans MinIO sous un nom d'objet
// unique et retourne son URL publique.
func UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if database.Minio == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectName := uuid.New().String() + filepath.Ext(file.Filename)

	_, err = database.Minio.PutObject(ctx, imageBucket(), objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://%s/%s/%s", os.Getenv("MINIO_ENDPOINT"), imageBucket(), objectName)
	return url, nil
}
