/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package snapstore

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/mikeb26/duelresult/internal"
)

const s3Prefix = "snapstore"

// S3Store keeps each snapshot as one JSON object, optionally gzipped, under
// the snapstore/ prefix of a bucket.
type S3Store struct {
	// Client is set by Init(); tests and callers with their own
	// configuration may set it directly instead.
	Client *s3.Client

	bucket   string
	endpoint string
	gzip     bool
}

// NewS3 returns a store for cfg's bucket. Callers must invoke Init() or set
// Client before use.
func NewS3(cfg internal.StoreConfig) *S3Store {
	return &S3Store{
		bucket:   cfg.Bucket,
		endpoint: cfg.Endpoint,
		gzip:     cfg.Gzip,
	}
}

// Init loads the default AWS configuration and checks that the snapshot
// prefix of the bucket can be listed.
func (c *S3Store) Init(ctx context.Context) error {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("snapstore.init: failed to load AWS config: %w", err)
	}
	c.Client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if c.endpoint != "" {
			o.BaseEndpoint = aws.String(c.endpoint)
			o.UsePathStyle = true
		}
	})

	if _, err = c.Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.bucket),
		Prefix:  aws.String(s3Prefix + "/"),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("snapstore.init: bucket %v is not usable: %w", c.bucket, err)
	}

	return nil
}

func (c *S3Store) objectKey(key string) string {
	// rooting key first keeps ".." from climbing out of the prefix
	objKey := path.Join(s3Prefix, path.Clean("/"+key)) + ".json"
	if c.gzip {
		objKey += ".gz"
	}
	return objKey
}

func isNoSuchKey(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.ErrorCode() == "NoSuchKey" || apiErr.ErrorCode() == "NotFound"
}

func (c *S3Store) Get(ctx context.Context, key string) ([]byte, error) {
	objKey := c.objectKey(key)
	resp, err := c.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objKey),
	})
	if isNoSuchKey(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("snapstore.get: s3://%v/%v: %w", c.bucket, objKey, err)
	}
	defer resp.Body.Close()

	var rdr io.Reader = resp.Body
	if c.gzip {
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("snapstore.get: s3://%v/%v is not gzipped: %w",
				c.bucket, objKey, err)
		}
		defer gr.Close()
		rdr = gr
	}

	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, fmt.Errorf("snapstore.get: failed to read s3://%v/%v: %w",
			c.bucket, objKey, err)
	}

	return data, nil
}

func (c *S3Store) Put(ctx context.Context, key string, data []byte) error {
	objKey := c.objectKey(key)
	input := &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(objKey),
		ContentType: aws.String("application/json"),
	}

	if c.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			return fmt.Errorf("snapstore.put: failed to compress %v: %w", key, err)
		}
		if err := gw.Close(); err != nil {
			return fmt.Errorf("snapstore.put: failed to compress %v: %w", key, err)
		}
		data = buf.Bytes()
		input.ContentEncoding = aws.String("gzip")
	}
	input.Body = bytes.NewReader(data)

	if _, err := c.Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("snapstore.put: s3://%v/%v: %w", c.bucket, objKey, err)
	}

	return nil
}

func (c *S3Store) Delete(ctx context.Context, key string) error {
	objKey := c.objectKey(key)
	if _, err := c.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objKey),
	}); err != nil {
		return fmt.Errorf("snapstore.delete: s3://%v/%v: %w", c.bucket, objKey, err)
	}

	return nil
}
