package pictureBed

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PresignedUploadRequest 预签名上传请求参数
type PresignedUploadRequest struct {
	Filename    string // 原始文件名
	ContentType string // 文件 MIME 类型
	ExpiresIn   int64  // 过期时间（秒），默认 15 分钟
}

// PresignedUploadResponse 预签名上传响应
type PresignedUploadResponse struct {
	UploadURL string            `json:"uploadUrl"` // 预签名上传 URL
	FileKey   string            `json:"fileKey"`   // 对象存储中的文件 key
	ImageURL  string            `json:"imageUrl"`  // 上传成功后的访问 URL
	ExpiresAt time.Time         `json:"expiresAt"`
	Method    string            `json:"method"`  // 通常是 PUT
	Headers   map[string]string `json:"headers"` // 上传时需要携带的 Headers
}

// GeneratePresignedUploadURL 生成预签名上传 URL，前端直接 PUT 到 S3
// 仅允许图片类型，文件名规则与服务端上传一致
func (pb *PictureBed) GeneratePresignedUploadURL(ctx context.Context, req PresignedUploadRequest) (*PresignedUploadResponse, error) {
	if !pb.IsS3() {
		return nil, ErrS3Disabled
	}
	if !AllowedType(req.ContentType) {
		return nil, ErrInvalidType
	}
	if err := pb.InitS3(ctx); err != nil {
		return nil, fmt.Errorf("初始化 S3 客户端失败: %w", err)
	}

	// 验证必要参数
	if pb.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket 未配置")
	}
	if req.Filename == "" {
		return nil, fmt.Errorf("文件名不能为空")
	}

	// 设置默认过期时间（15 分钟）
	if req.ExpiresIn <= 0 {
		req.ExpiresIn = 900 // 15 分钟
	}

	uniqueFilename, err := GenerateFilename(req.Filename, req.ContentType)
	if err != nil {
		return nil, err
	}
	key := pb.objectKey(uniqueFilename)
	contentType := req.ContentType

	// 创建预签名客户端
	presignClient := s3.NewPresignClient(pb.s3Client)

	// 生成预签名 PUT 请求
	presignedReq, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(pb.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Duration(req.ExpiresIn) * time.Second
	})

	if err != nil {
		return nil, fmt.Errorf("生成预签名 URL 失败: %w", err)
	}

	// 构建响应
	response := &PresignedUploadResponse{
		UploadURL: presignedReq.URL,
		FileKey:   key,
		ImageURL:  pb.objectURL(key),
		ExpiresAt: time.Now().Add(time.Duration(req.ExpiresIn) * time.Second),
		Method:    presignedReq.Method,
		Headers: map[string]string{
			"Content-Type": contentType,
		},
	}

	// 添加预签名请求中的其他 Headers
	for k, v := range presignedReq.SignedHeader {
		if len(v) > 0 {
			response.Headers[k] = v[0]
		}
	}

	return response, nil
}
