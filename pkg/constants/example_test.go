package constants_test

import (
	"fmt"
	"net/http"

	"github.com/kappaml/kappaml-go/pkg/constants"
)

// Example_timeouts demonstrates timeout constants
func Example_timeouts() {
	client := &http.Client{
		Timeout: constants.DefaultHTTPTimeout,
	}

	fmt.Printf("HTTP timeout: %v\n", client.Timeout)
	fmt.Printf("Deployment timeout: %v\n", constants.DefaultDeploymentTimeout)
	fmt.Printf("Poll interval: %v\n", constants.DeploymentPollInterval)
	// Output:
	// HTTP timeout: 30s
	// Deployment timeout: 1m0s
	// Poll interval: 5s
}

// Example_endpoint demonstrates the API endpoint constants
func Example_endpoint() {
	fmt.Println(constants.DefaultBaseURL + "/models")
	fmt.Println(constants.APIKeyHeader)
	// Output:
	// https://api.kappaml.com/v1/models
	// X-API-Key
}
