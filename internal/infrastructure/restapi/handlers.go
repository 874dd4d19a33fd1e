package restapi

import (
	"net/http"

	"raffle_deployer/internal/app/port"
	"raffle_deployer/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// NetworkView is a network as served by the API: its connection settings,
// the parameter table entry for its chain ID and whether mocks are deployed there.
type NetworkView struct {
	Network     entity.NetworkDefinition  `json:"network"`
	Parameters  *entity.NetworkParameters `json:"parameters,omitempty"`
	Development bool                      `json:"development"`
}

// APIError is the body of every non-2xx response.
type APIError struct {
	Error string `json:"error"`
}

// DeploymentsHandler serves networks and deployment records read-only.
type DeploymentsHandler struct {
	networks port.NetworkDefinitionProvider
	params   port.NetworkParametersProvider
	store    port.DeploymentStore
	logger   port.Logger
}

// NewDeploymentsHandler создает новый экземпляр DeploymentsHandler.
func NewDeploymentsHandler(networks port.NetworkDefinitionProvider, params port.NetworkParametersProvider, store port.DeploymentStore, logger port.Logger) *DeploymentsHandler {
	return &DeploymentsHandler{networks: networks, params: params, store: store, logger: logger}
}

func (h *DeploymentsHandler) view(def entity.NetworkDefinition) NetworkView {
	v := NetworkView{Network: def, Development: h.params.IsDevelopmentChain(def.Name)}
	if p, ok := h.params.ForChainID(def.ChainID); ok {
		v.Parameters = &p
	}
	return v
}

// ListNetworksHandler returns every known network.
func (h *DeploymentsHandler) ListNetworksHandler(c *gin.Context) {
	defs := h.networks.GetAllNetworkDefinitions()
	views := make([]NetworkView, 0, len(defs))
	for _, def := range defs {
		views = append(views, h.view(def))
	}
	c.JSON(http.StatusOK, gin.H{"networks": views})
}

// GetNetworkHandler returns one network. The id is a network name, or a
// parameter table key ("31337", "default") for the raw table entry.
func (h *DeploymentsHandler) GetNetworkHandler(c *gin.Context) {
	id := c.Param("id")
	if def, ok := h.networks.GetNetworkDefinitionByName(id); ok {
		c.JSON(http.StatusOK, h.view(def))
		return
	}
	if p, ok := h.params.Lookup(id); ok {
		c.JSON(http.StatusOK, gin.H{"parameters": p})
		return
	}
	c.JSON(http.StatusNotFound, APIError{Error: "network not found: " + id})
}

// ListDeploymentsHandler returns every recorded deployment of a network.
func (h *DeploymentsHandler) ListDeploymentsHandler(c *gin.Context) {
	network := c.Param("network")
	if _, ok := h.networks.GetNetworkDefinitionByName(network); !ok {
		c.JSON(http.StatusNotFound, APIError{Error: "network not found: " + network})
		return
	}

	deployments, err := h.store.List(network)
	if err != nil {
		h.logger.Error("Failed to list deployments", "network", network, "error", err)
		c.JSON(http.StatusInternalServerError, APIError{Error: "failed to list deployments"})
		return
	}
	if deployments == nil {
		deployments = []entity.Deployment{}
	}
	c.JSON(http.StatusOK, gin.H{"network": network, "deployments": deployments})
}

// GetDeploymentHandler returns the record of one contract on one network.
func (h *DeploymentsHandler) GetDeploymentHandler(c *gin.Context) {
	network, contract := c.Param("network"), c.Param("contract")

	d, ok, err := h.store.Get(network, contract)
	if err != nil {
		h.logger.Error("Failed to read deployment", "network", network, "contract", contract, "error", err)
		c.JSON(http.StatusInternalServerError, APIError{Error: "failed to read deployment"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, APIError{Error: "deployment not found: " + network + "/" + contract})
		return
	}
	c.JSON(http.StatusOK, d)
}
