package artifactloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"raffle_deployer/internal/app/port"
	"raffle_deployer/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common/hexutil"
	jsoniter "github.com/json-iterator/go"
	"github.com/patrickmn/go-cache"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var errStopWalk = errors.New("stop walk")

// ArtifactFileLoader implements port.ArtifactProvider by scanning a directory of
// compiler artifacts (<ContractName>.json) and caching what it parsed.
type ArtifactFileLoader struct {
	artifactsDir string
	cache        *cache.Cache
	loggerDebug  func(msg string, args ...any)
}

// NewArtifactLoader creates a new ArtifactFileLoader rooted at artifactsDir.
func NewArtifactLoader(artifactsDir string, loggerDebug func(msg string, args ...any)) port.ArtifactProvider {
	return &ArtifactFileLoader{
		artifactsDir: artifactsDir,
		cache:        cache.New(cache.NoExpiration, 10*time.Minute),
		loggerDebug:  loggerDebug,
	}
}

// GetArtifact returns the artifact for a contract name.
func (l *ArtifactFileLoader) GetArtifact(name string) (entity.Artifact, error) {
	if cached, ok := l.cache.Get(name); ok {
		return cached.(entity.Artifact), nil
	}

	path, err := l.find(name)
	if err != nil {
		return entity.Artifact{}, err
	}

	artifact, err := ReadArtifact(path)
	if err != nil {
		return entity.Artifact{}, err
	}
	if artifact.ContractName == "" {
		artifact.ContractName = name
	}

	l.cache.Set(name, artifact, cache.NoExpiration)
	if l.loggerDebug != nil {
		l.loggerDebug("Artifact loaded", "contract", name, "path", path)
	}
	return artifact, nil
}

func (l *ArtifactFileLoader) find(name string) (string, error) {
	want := name + ".json"
	var found string

	err := filepath.WalkDir(l.artifactsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == want {
			found = path
			return errStopWalk
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s (artifacts directory %s does not exist)", entity.ErrArtifactNotFound, name, l.artifactsDir)
		}
		return "", fmt.Errorf("failed to scan artifacts directory %s: %w", l.artifactsDir, err)
	}
	if found == "" {
		return "", fmt.Errorf("%w: %s in %s", entity.ErrArtifactNotFound, name, l.artifactsDir)
	}
	return found, nil
}

// ReadArtifact parses and validates a single artifact file.
func ReadArtifact(path string) (entity.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entity.Artifact{}, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	var artifact entity.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return entity.Artifact{}, fmt.Errorf("failed to unmarshal artifact %s: %w", path, err)
	}
	if len(artifact.ABI) == 0 {
		return entity.Artifact{}, fmt.Errorf("artifact %s has no abi", path)
	}
	if !strings.HasPrefix(artifact.Bytecode, "0x") {
		artifact.Bytecode = "0x" + artifact.Bytecode
	}
	code, err := hexutil.Decode(artifact.Bytecode)
	if err != nil || len(code) == 0 {
		return entity.Artifact{}, fmt.Errorf("artifact %s has no deployable bytecode", path)
	}
	return artifact, nil
}
