// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Package filestore moves the files behind File nodes to and from the
// project's object store, using scoped S3 credentials issued by the
// data-management service.
package filestore

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"git.criptapp.org/cript.git/sdk/go/cript"
	"git.criptapp.org/cript.git/sdk/go/ctxlog"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// UploadTarget is a scoped object-store destination issued by the
// service. The credentials are short-lived and limited to Prefix
// within Bucket.
type UploadTarget struct {
	Region          string `json:"region"`
	Endpoint        string `json:"endpoint,omitempty"`
	Bucket          string `json:"bucket"`
	Prefix          string `json:"prefix,omitempty"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	SessionToken    string `json:"session_token,omitempty"`
}

// FetchUploadTarget asks the service for an object-store destination
// scoped to the authenticated user's storage.
func FetchUploadTarget(ctx context.Context, client *cript.Client) (*UploadTarget, error) {
	var target UploadTarget
	err := client.RequestAndDecodeContext(ctx, &target, "GET", "api/v1/files/upload-target", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("requesting upload target: %w", err)
	}
	if target.Bucket == "" {
		return nil, fmt.Errorf("service returned upload target with no bucket")
	}
	return &target, nil
}

type uploadAPI interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type objectAPI interface {
	GetObject(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// A Store transfers files to and from one upload target.
type Store struct {
	Target *UploadTarget

	uploader uploadAPI
	objects  objectAPI
}

// NewStore returns a Store for the given upload target.
func NewStore(ctx context.Context, target *UploadTarget) (*Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(target.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			target.AccessKeyID, target.SecretAccessKey, target.SessionToken)))
	if err != nil {
		return nil, fmt.Errorf("configuring object store client: %w", err)
	}
	svc := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if target.Endpoint != "" {
			o.BaseEndpoint = aws.String(target.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &Store{
		Target:   target,
		uploader: manager.NewUploader(svc),
		objects:  svc,
	}, nil
}

// Open fetches an upload target from the service and returns a Store
// for it.
func Open(ctx context.Context, client *cript.Client) (*Store, error) {
	target, err := FetchUploadTarget(ctx, client)
	if err != nil {
		return nil, err
	}
	return NewStore(ctx, target)
}

// Upload stores the local file named by f.Source and fills in the
// node's object_name and checksum fields. The object key is derived
// from the content checksum, so re-uploading identical data lands on
// the same key.
func (fs *Store) Upload(ctx context.Context, f *cript.File) error {
	if f.Source == "" {
		return fmt.Errorf("file node %q has no source", f.Name)
	}
	src, err := os.Open(f.Source)
	if err != nil {
		return err
	}
	defer src.Close()

	h := sha256.New()
	size, err := io.Copy(h, src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", f.Source, err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return err
	}
	sum := fmt.Sprintf("%x", h.Sum(nil))
	ext := f.Extension
	if ext == "" {
		ext = filepath.Ext(f.Source)
	}
	key := fs.Target.Prefix + sum + ext

	t0 := time.Now()
	_, err = fs.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(fs.Target.Bucket),
		Key:    aws.String(key),
		Body:   src,
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", f.Source, err)
	}
	ctxlog.FromContext(ctx).WithFields(logrus.Fields{
		"object":  key,
		"size":    humanize.IBytes(uint64(size)),
		"elapsed": time.Since(t0).Round(time.Millisecond),
	}).Info("uploaded file")

	f.ObjectName = key
	f.Checksum = sum
	f.Extension = ext
	return nil
}

// Download writes the stored object behind f to dst, verifying the
// data against the node's checksum. It returns BadChecksum if the
// data is complete but does not match.
func (fs *Store) Download(ctx context.Context, f *cript.File, dst io.Writer) (int64, error) {
	if f.ObjectName == "" {
		return 0, fmt.Errorf("file node %q has not been uploaded", f.Name)
	}
	resp, err := fs.objects.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(fs.Target.Bucket),
		Key:    aws.String(f.ObjectName),
	})
	if err != nil {
		return 0, fmt.Errorf("fetching %s: %w", f.ObjectName, err)
	}
	cr := ChecksumReader{resp.Body, sha256.New(), f.Checksum}
	n, err := cr.WriteTo(dst)
	if closeErr := cr.Close(); err == nil && closeErr != nil && closeErr != BadChecksum {
		err = closeErr
	}
	return n, err
}
