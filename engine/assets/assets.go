package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/isocubes/engine/core"
)

var (
	ErrAssetNotFound   = errors.New("asset not found")
	ErrWatcherClosed   = errors.New("asset watcher already closed")
	ErrNoLoaderForType = errors.New("no loader registered for asset type")
)

type AssetType uint8

const (
	AssetTypeNone AssetType = iota
	AssetTypeScene
)

type AssetInfo struct {
	Path       string
	Type       AssetType
	LastLoaded time.Time
}

// AssetManager indexes the files under an assets directory and watches it
// for changes. The watcher goroutine only records which scenes changed;
// callers drain them with PendingReloads from the frame loop.
type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[AssetType]Loader
	pending map[string]struct{}

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	started  bool
	isClosed bool
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[AssetType]Loader),
		pending:  make(map[string]struct{}),
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	am.registerLoader(AssetTypeScene, &SceneLoader{})
	return am, nil
}

func (am *AssetManager) Initialize(assetsDir string) error {
	if err := am.addRecursive(assetsDir); err != nil {
		return err
	}
	am.mutex.Lock()
	am.started = true
	am.mutex.Unlock()
	go am.start()
	core.LogInfo("Asset manager watching '%s' (%d assets).", assetsDir, am.Count())
	return nil
}

// Shutdown stops the watcher goroutine and waits for it to exit.
func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return ErrWatcherClosed
	}
	am.isClosed = true
	started := am.started
	am.mutex.Unlock()

	if !started {
		return am.fsnotify.Close()
	}
	close(am.done)
	<-am.stopped
	return nil
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.closed() {
		return ErrWatcherClosed
	}
	return am.watchRecursive(name)
}

func (am *AssetManager) closed() bool {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return am.isClosed
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType AssetType, loader Loader) {
	am.loaders[assetType] = loader
}

// Lookup returns the index entry for path.
func (am *AssetManager) Lookup(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	asset, ok := am.assets[filepath.Clean(path)]
	return asset, ok
}

func (am *AssetManager) Count() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// LoadAsset loads an indexed asset with the loader registered for its type.
func (am *AssetManager) LoadAsset(path string) (interface{}, error) {
	path = filepath.Clean(path)

	am.mutex.Lock()
	asset, exists := am.assets[path]
	if !exists {
		am.mutex.Unlock()
		return nil, fmt.Errorf("%s: %w", path, ErrAssetNotFound)
	}
	// Load or reload asset from disk if necessary
	asset.LastLoaded = time.Now()
	am.assets[path] = asset // Update the loaded time
	loader, loaderExists := am.loaders[asset.Type]
	am.mutex.Unlock()

	if !loaderExists {
		return nil, fmt.Errorf("%s (type %d): %w", path, asset.Type, ErrNoLoaderForType)
	}
	return loader.Load(path)
}

func (am *AssetManager) LoadScene(path string) (*Scene, error) {
	asset, err := am.LoadAsset(path)
	if err != nil {
		return nil, err
	}
	scene, ok := asset.(*Scene)
	if !ok {
		return nil, fmt.Errorf("%s is not a scene: %w", path, ErrAssetNotFound)
	}
	return scene, nil
}

// PendingReloads returns, sorted, every scene path written since the last
// call and clears the set.
func (am *AssetManager) PendingReloads() []string {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	if len(am.pending) == 0 {
		return nil
	}
	paths := make([]string, 0, len(am.pending))
	for p := range am.pending {
		paths = append(paths, p)
	}
	clear(am.pending)
	sort.Strings(paths)
	return paths
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleWatchEvent(e)

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			if err := am.fsnotify.Close(); err != nil {
				core.LogWarn("asset watcher close: %s", err)
			}
			return
		}
	}
}

func (am *AssetManager) handleWatchEvent(e fsnotify.Event) {
	name := filepath.Clean(e.Name)
	s, err := os.Stat(name)
	if err == nil && s != nil && s.IsDir() {
		if e.Op&fsnotify.Create != 0 {
			if err := am.watchRecursive(name); err != nil {
				core.LogWarn("failed to watch '%s': %s", name, err)
			}
		}
		return
	}
	// Handle create or modify events
	if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		if am.handleFileEvent(name) == AssetTypeScene {
			am.mutex.Lock()
			am.pending[name] = struct{}{}
			am.mutex.Unlock()
			core.LogDebug("scene '%s' changed on disk", name)
		}
	}
	// Can't stat a deleted path, so drop it from the index and the watch list either way.
	if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		am.removeAsset(name)
		_ = am.fsnotify.Remove(name)
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes the files it finds.
// this is racy: a file created before the watch is added is only indexed, not reported.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		walkPath = filepath.Clean(walkPath)
		if fi.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) AssetType {
	assetType := determineAssetType(path)
	if assetType == AssetTypeNone {
		return assetType
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{
		Path: path,
		Type: assetType,
	}
	return assetType
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, path)
	delete(am.pending, path)
}

func determineAssetType(path string) AssetType {
	switch filepath.Ext(path) {
	case ".toml":
		return AssetTypeScene
	default:
		return AssetTypeNone
	}
}
