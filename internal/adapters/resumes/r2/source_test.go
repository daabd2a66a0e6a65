package r2

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3 struct {
	objects map[string][]byte
	bucket  string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.bucket = *in.Bucket
	data, ok := f.objects[*in.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestFetchResume(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{"a.txt": []byte("resume")}}
	src := NewWithClient(fake, "resumes")

	data, err := src.FetchResume(context.Background(), "a.txt")
	if err != nil {
		t.Fatalf("FetchResume failed: %v", err)
	}
	if string(data) != "resume" || fake.bucket != "resumes" {
		t.Fatalf("got %q from bucket %q", data, fake.bucket)
	}

	if _, err := src.FetchResume(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestFetchResumeTooLarge(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{"big.pdf": make([]byte, MaxResumeBytes+1)}}
	src := NewWithClient(fake, "resumes")

	if _, err := src.FetchResume(context.Background(), "big.pdf"); err == nil {
		t.Fatal("expected size error")
	}
}

func TestEndpoint(t *testing.T) {
	if got := (Config{AccountID: "abc"}).Endpoint(); got != "https://abc.r2.cloudflarestorage.com" {
		t.Fatalf("Endpoint = %q", got)
	}
}
