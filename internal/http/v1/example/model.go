package example

// Greeting is the response payload for GET /example/hello.
type Greeting struct {
	Name string `json:"name" doc:"Caller display name, or \"anonymous\" when unauthenticated" example:"alice"`
	Env  string `json:"env"  doc:"Configured environment (example.env)"                       example:"staging"`
}

// GreetingOutput is the response wrapper for the greeting endpoint.
type GreetingOutput struct {
	Body Greeting
}
