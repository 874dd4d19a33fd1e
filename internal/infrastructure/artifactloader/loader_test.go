package artifactloader

import (
	"os"
	"path/filepath"
	"testing"

	"raffle_deployer/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleArtifact = `{
  "contractName": "VRFCoordinatorV2Mock",
  "sourceName": "@chainlink/contracts/src/v0.8/mocks/VRFCoordinatorV2Mock.sol",
  "abi": [{"inputs":[{"internalType":"uint96","name":"_baseFee","type":"uint96"},{"internalType":"uint96","name":"_gasPriceLink","type":"uint96"}],"stateMutability":"nonpayable","type":"constructor"}],
  "bytecode": "0x600a600c600039600a6000f3602a60005260206000f3"
}`

func writeArtifact(t *testing.T, dir, rel, body string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestGetArtifactFindsNestedFile(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "@chainlink/contracts/src/v0.8/mocks/VRFCoordinatorV2Mock.sol/VRFCoordinatorV2Mock.json", sampleArtifact)

	loader := NewArtifactLoader(dir, nil)
	a, err := loader.GetArtifact("VRFCoordinatorV2Mock")
	require.NoError(t, err)
	assert.Equal(t, "VRFCoordinatorV2Mock", a.ContractName)
	assert.Equal(t, "0x600a600c600039600a6000f3602a60005260206000f3", a.Bytecode)
	assert.NotEmpty(t, a.ABI)
}

func TestGetArtifactIsCached(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, "Mock.json", sampleArtifact)

	loader := NewArtifactLoader(dir, nil)
	_, err := loader.GetArtifact("Mock")
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	_, err = loader.GetArtifact("Mock")
	assert.NoError(t, err)
}

func TestGetArtifactMissing(t *testing.T) {
	loader := NewArtifactLoader(t.TempDir(), nil)
	_, err := loader.GetArtifact("Nope")
	assert.ErrorIs(t, err, entity.ErrArtifactNotFound)

	loader = NewArtifactLoader(filepath.Join(t.TempDir(), "absent"), nil)
	_, err = loader.GetArtifact("Nope")
	assert.ErrorIs(t, err, entity.ErrArtifactNotFound)
}

func TestReadArtifactRejectsInterfaces(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, "IFace.json", `{"contractName":"IFace","abi":[],"bytecode":"0x"}`)

	_, err := ReadArtifact(path)
	assert.Error(t, err)
}
