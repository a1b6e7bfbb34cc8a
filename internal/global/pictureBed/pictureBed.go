package pictureBed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"community-portal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// ErrNotExist 删除的文件不存在
var ErrNotExist = errors.New("file does not exist")

// ErrS3Disabled 当前为本地存储，不支持预签名
var ErrS3Disabled = errors.New("s3 storage is not enabled")

// PictureBed 图片存储，按配置写入本地目录或 S3
type PictureBed struct {
	Driver  string
	SaveDir string // 本地保存目录
	BaseURL string // 图片访问基础URL

	Bucket       string
	Prefix       string
	Endpoint     string
	Region       string
	UsePathStyle bool
	accessKey    string
	secretKey    string
	s3Client     *s3.Client
	uploader     *manager.Uploader
	s3Once       sync.Once
	s3Err        error
}

// NewPictureBed 创建本地图片床实例
func NewPictureBed(saveDir, baseURL string) *PictureBed {
	return &PictureBed{
		Driver:  config.StorageLocal,
		SaveDir: saveDir,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// FromConfig 根据存储配置创建实例，本地文件保存在 <Home>/<PublicPath>
func FromConfig(cfg *config.Config) *PictureBed {
	if cfg.Storage.Driver != config.StorageS3 {
		publicPath := "/" + strings.Trim(cfg.Storage.PublicPath, "/")
		return NewPictureBed(filepath.Join(cfg.Storage.Home, filepath.FromSlash(publicPath)), publicPath)
	}
	return &PictureBed{
		Driver:       config.StorageS3,
		BaseURL:      strings.TrimRight(cfg.S3.BaseURL, "/"),
		Bucket:       cfg.S3.Bucket,
		Prefix:       cfg.S3.Prefix,
		Endpoint:     cfg.S3.Endpoint,
		Region:       cfg.S3.Region,
		UsePathStyle: cfg.S3.UsePathStyle,
		accessKey:    cfg.S3.AccessKey,
		secretKey:    cfg.S3.SecretAccessKey,
	}
}

func (pb *PictureBed) IsS3() bool {
	return pb.Driver == config.StorageS3
}

// InitS3 初始化 S3 客户端，兼容 MinIO 等自定义 endpoint，并发调用时只执行一次
func (pb *PictureBed) InitS3(ctx context.Context) error {
	pb.s3Once.Do(func() {
		pb.s3Err = pb.newS3Client(context.WithoutCancel(ctx))
	})
	return pb.s3Err
}

func (pb *PictureBed) newS3Client(ctx context.Context) error {
	opts := []func(*awsconfig.LoadOptions) error{}
	if pb.Region != "" {
		opts = append(opts, awsconfig.WithRegion(pb.Region))
	}
	if pb.accessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(pb.accessKey, pb.secretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return err
	}

	pb.s3Client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if pb.Endpoint != "" {
			o.BaseEndpoint = aws.String(pb.Endpoint)
		}
		o.UsePathStyle = pb.UsePathStyle
	})
	pb.uploader = manager.NewUploader(pb.s3Client)
	return nil
}

// SaveImage 保存图片并返回访问 URL，filename 需由调用方生成
func (pb *PictureBed) SaveImage(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if pb.IsS3() {
		return pb.saveS3(ctx, filename, contentType, r)
	}

	// 确保保存目录存在
	if err := os.MkdirAll(pb.SaveDir, 0o755); err != nil {
		return "", err
	}

	filePath := filepath.Join(pb.SaveDir, filename)
	dst, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		_ = os.Remove(filePath)
		return "", err
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(filePath)
		return "", err
	}

	return pb.BaseURL + "/" + filename, nil
}

func (pb *PictureBed) saveS3(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if err := pb.InitS3(ctx); err != nil {
		return "", fmt.Errorf("初始化 S3 客户端失败: %w", err)
	}

	key := pb.objectKey(filename)
	if _, err := pb.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(pb.Bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	}); err != nil {
		return "", fmt.Errorf("上传到 S3 失败: %w", err)
	}
	return pb.objectURL(key), nil
}

// DeleteImage 删除图片，不存在时返回 ErrNotExist
func (pb *PictureBed) DeleteImage(ctx context.Context, filename string) error {
	if !pb.IsS3() {
		err := os.Remove(filepath.Join(pb.SaveDir, filename))
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotExist
		}
		return err
	}

	if err := pb.InitS3(ctx); err != nil {
		return fmt.Errorf("初始化 S3 客户端失败: %w", err)
	}
	key := pb.objectKey(filename)
	_, err := pb.s3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(pb.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NotFound" || apiErr.ErrorCode() == "NoSuchKey") {
			return ErrNotExist
		}
		return err
	}
	_, err = pb.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(pb.Bucket),
		Key:    aws.String(key),
	})
	return err
}

// objectKey 构建完整的对象 key（包含前缀）
func (pb *PictureBed) objectKey(filename string) string {
	return strings.TrimLeft(path.Join(strings.Trim(pb.Prefix, "/"), filename), "/")
}

// objectURL 构建访问 URL
func (pb *PictureBed) objectURL(key string) string {
	base := strings.TrimRight(pb.BaseURL, "/")
	if base == "" {
		base = strings.TrimRight(pb.Endpoint, "/")
	}
	if pb.UsePathStyle {
		return base + "/" + pb.Bucket + "/" + key
	}
	return base + "/" + key
}
