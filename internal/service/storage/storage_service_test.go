// Package storage 的单元测试
// 覆盖存储名生成、类型推断、删除语义和同名并发上传
package storage_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minglangedu/website/config"
	apperrors "github.com/minglangedu/website/internal/errors"
	storageservice "github.com/minglangedu/website/internal/service/storage"
)

// setupStorage 创建指向临时目录的存储服务
func setupStorage(t *testing.T, cfg config.FileConfig) (storageservice.StorageService, string) {
	dir := t.TempDir()
	cfg.StoragePath = dir
	svc, err := storageservice.NewStorageService(cfg)
	require.NoError(t, err)
	return svc, dir
}

func defaultFileConfig() config.FileConfig {
	return config.FileConfig{
		MaxFileSize:       10 * 1024 * 1024,
		AllowedExtensions: []string{"*"},
	}
}

func TestSave(t *testing.T) {
	svc, dir := setupStorage(t, defaultFileConfig())

	t.Run("保存文件并生成存储名", func(t *testing.T) {
		storedName, err := svc.Save("photo.PNG", strings.NewReader("image-bytes"))
		require.NoError(t, err)

		// 存储名是UUID加小写扩展名，不等于原始文件名
		assert.NotEqual(t, "photo.PNG", storedName)
		assert.True(t, strings.HasSuffix(storedName, ".png"))

		content, err := os.ReadFile(filepath.Join(dir, storedName))
		require.NoError(t, err)
		assert.Equal(t, "image-bytes", string(content))
	})

	t.Run("无扩展名时使用默认扩展名", func(t *testing.T) {
		storedName, err := svc.Save("README", strings.NewReader("x"))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(storedName, ".bin"))
	})

	t.Run("同名上传互不覆盖", func(t *testing.T) {
		first, err := svc.Save("same.jpg", strings.NewReader("first"))
		require.NoError(t, err)
		second, err := svc.Save("same.jpg", strings.NewReader("second"))
		require.NoError(t, err)

		assert.NotEqual(t, first, second)

		c1, err := os.ReadFile(filepath.Join(dir, first))
		require.NoError(t, err)
		c2, err := os.ReadFile(filepath.Join(dir, second))
		require.NoError(t, err)
		assert.Equal(t, "first", string(c1))
		assert.Equal(t, "second", string(c2))
	})

	t.Run("超过大小限制时拒绝", func(t *testing.T) {
		cfg := defaultFileConfig()
		cfg.MaxFileSize = 8
		small, _ := setupStorage(t, cfg)

		_, err := small.Save("big.dat", strings.NewReader("way more than eight bytes"))
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrFileSizeTooLarge))
	})

	t.Run("不允许的扩展名被拒绝", func(t *testing.T) {
		cfg := defaultFileConfig()
		cfg.AllowedExtensions = []string{".jpg", ".png"}
		limited, _ := setupStorage(t, cfg)

		_, err := limited.Save("script.exe", strings.NewReader("x"))
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrFileTypeNotAllowed))

		_, err = limited.Save("pic.JPG", strings.NewReader("x"))
		assert.NoError(t, err)
	})
}

func TestConcurrentSaveSameName(t *testing.T) {
	svc, dir := setupStorage(t, defaultFileConfig())

	// 两个大文件并发上传同一个原始文件名
	// 结果必须是两个独立的存储文件，各自包含完整内容
	contentA := bytes.Repeat([]byte("a"), 1<<20)
	contentB := bytes.Repeat([]byte("b"), 1<<20)

	var wg sync.WaitGroup
	names := make([]string, 2)
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		names[0], errs[0] = svc.Save("clip.mp4", bytes.NewReader(contentA))
	}()
	go func() {
		defer wg.Done()
		names[1], errs[1] = svc.Save("clip.mp4", bytes.NewReader(contentB))
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	require.NotEqual(t, names[0], names[1])

	gotA, err := os.ReadFile(filepath.Join(dir, names[0]))
	require.NoError(t, err)
	gotB, err := os.ReadFile(filepath.Join(dir, names[1]))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(contentA, gotA))
	assert.True(t, bytes.Equal(contentB, gotB))
}

func TestRemove(t *testing.T) {
	svc, dir := setupStorage(t, defaultFileConfig())

	storedName, err := svc.Save("gone.txt", strings.NewReader("bye"))
	require.NoError(t, err)

	require.NoError(t, svc.Remove(storedName))
	_, statErr := os.Stat(filepath.Join(dir, storedName))
	assert.True(t, os.IsNotExist(statErr))

	// 文件已不存在不算错误
	assert.NoError(t, svc.Remove(storedName))
	assert.NoError(t, svc.Remove(""))
}

func TestClassify(t *testing.T) {
	svc, _ := setupStorage(t, defaultFileConfig())

	assert.Equal(t, "image", svc.Classify("image/png"))
	assert.Equal(t, "image", svc.Classify("image/svg+xml"))
	assert.Equal(t, "video", svc.Classify("video/mp4"))
	assert.Equal(t, "", svc.Classify("application/pdf"))
	assert.Equal(t, "", svc.Classify(""))
}
