package aws

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func GetS3Client() *s3.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Printf("Could not load default config: %s\n", err.Error())
		return nil
	}
	svc := s3.NewFromConfig(cfg)
	return svc
}

// S3UploadMedia mirrors a locally stored media file into the bucket
// under key. Used when an object-storage bucket is configured for
// media; the local file stays authoritative.
func S3UploadMedia(ctx context.Context, bucket, key, filePath, contentType string) error {
	file, err := os.Open(filePath)
	if err != nil {
		log.Printf("Could not open file to upload: %s\n", err.Error())
		return err
	}
	defer file.Close()
	client := GetS3Client()
	if client == nil {
		return nil
	}
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("Error uploading media to S3 bucket: %s\n", err.Error())
		return err
	}
	return nil
}
