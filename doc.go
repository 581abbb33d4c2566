/*
responses is a client for the OpenAI Responses API, with a decoder for
streamed responses which keeps the location of any value that does not
match the expected schema.

The client is in package pkg/openai, the request and response types in
pkg/schema, and the event stream in pkg/stream. This package holds the
errors which are common to all of them. Use errors.Is to test the category
of an error, and errors.As to retrieve an *APIError,
*UnexpectedResponseError or *decoder.Error.
*/
package responses
