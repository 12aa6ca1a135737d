package winfs

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	lru "github.com/hashicorp/golang-lru"
	"github.com/mattetti/filebuffer"
)

// s3ReaderChunkSize is the size of chunked GetObject range requests
const s3ReaderChunkSize = 20 * 1024 * 1024

// S3FileSystem abstracts AWS S3 as a FileSystem
type S3FileSystem struct {
	s3Client    *s3.S3
	objectCache *lru.Cache
}

func parseS3URI(uri string) (*url.URL, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}

	if parsed.Scheme != "s3" {
		return nil, fmt.Errorf("Invalid s3 URI: %s", uri)
	}

	return parsed, nil
}

func objectKey(parsed *url.URL) string {
	return strings.TrimPrefix(parsed.Path, "/")
}

// ListFiles lists files that match pathGlob.
func (s *S3FileSystem) ListFiles(pathGlob string) ([]FileInfo, error) {
	s3Files := make([]FileInfo, 0)

	parsed, err := parseS3URI(pathGlob)
	if err != nil {
		return nil, err
	}

	baseURI := parsed.Scheme + "://" + parsed.Hostname()

	globbedKey := objectKey(parsed)
	prefix := globbedKey
	if globIndex := strings.IndexAny(prefix, "*?["); globIndex != -1 {
		prefix = prefix[:globIndex]
	}

	params := &s3.ListObjectsInput{
		Bucket: aws.String(parsed.Hostname()),
		Prefix: aws.String(prefix),
	}
	err = s.s3Client.ListObjectsPages(params,
		func(page *s3.ListObjectsOutput, _ bool) bool {
			for _, object := range page.Contents {
				matched, _ := filepath.Match(globbedKey, *object.Key)
				if matched || *object.Key == globbedKey {
					s3Files = append(s3Files, FileInfo{
						Name: baseURI + "/" + *object.Key,
						Size: *object.Size,
					})
				}
			}
			return true
		})

	return s3Files, err
}

// OpenReader opens a reader to the file at filePath. The reader
// is initially seeked to "startAt" bytes into the file.
func (s *S3FileSystem) OpenReader(filePath string, startAt int64) (io.ReadCloser, error) {
	parsed, err := parseS3URI(filePath)
	if err != nil {
		return nil, err
	}

	fInfo, err := s.Stat(filePath)
	if err != nil {
		return nil, err
	}

	reader := &s3Reader{
		client:    s.s3Client,
		bucket:    parsed.Hostname(),
		key:       objectKey(parsed),
		offset:    startAt,
		chunkSize: s3ReaderChunkSize,
		totalSize: fInfo.Size,
	}
	err = reader.loadNextChunk()
	return reader, err
}

// OpenWriter opens a writer to the file at filePath.
func (s *S3FileSystem) OpenWriter(filePath string) (io.WriteCloser, error) {
	parsed, err := parseS3URI(filePath)
	if err != nil {
		return nil, err
	}

	writer := &s3Writer{
		client: s.s3Client,
		bucket: parsed.Hostname(),
		key:    objectKey(parsed),
		buf:    filebuffer.New(nil),
	}
	return writer, nil
}

// Stat returns information about the file at filePath.
func (s *S3FileSystem) Stat(filePath string) (FileInfo, error) {
	if cached, exists := s.objectCache.Get(filePath); exists {
		return cached.(FileInfo), nil
	}

	parsed, err := parseS3URI(filePath)
	if err != nil {
		return FileInfo{}, err
	}
	key := objectKey(parsed)

	params := &s3.ListObjectsInput{
		Bucket: aws.String(parsed.Hostname()),
		Prefix: aws.String(key),
	}

	result, err := s.s3Client.ListObjects(params)
	if err != nil {
		return FileInfo{}, err
	}

	for _, object := range result.Contents {
		if *object.Key == key {
			fInfo := FileInfo{
				Name: filePath,
				Size: *object.Size,
			}
			s.objectCache.Add(filePath, fInfo)
			return fInfo, nil
		}
	}

	return FileInfo{}, errors.New("No file with given filename")
}

// Init initializes the filesystem.
func (s *S3FileSystem) Init() error {
	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))
	s.s3Client = s3.New(sess)

	cache, err := lru.New(256)
	if err != nil {
		return err
	}
	s.objectCache = cache

	return nil
}

// Delete removes the object at filePath.
func (s *S3FileSystem) Delete(filePath string) error {
	parsed, err := parseS3URI(filePath)
	if err != nil {
		return err
	}

	params := &s3.DeleteObjectInput{
		Bucket: aws.String(parsed.Hostname()),
		Key:    aws.String(objectKey(parsed)),
	}
	_, err = s.s3Client.DeleteObject(params)
	s.objectCache.Remove(filePath)
	return err
}

// Join joins file path elements
func (s *S3FileSystem) Join(elem ...string) string {
	stripped := make([]string, len(elem))
	for i, str := range elem {
		if i != 0 {
			str = strings.TrimPrefix(str, "/")
		}
		if i != len(elem)-1 {
			str = strings.TrimSuffix(str, "/")
		}
		stripped[i] = str
	}
	return strings.Join(stripped, "/")
}
