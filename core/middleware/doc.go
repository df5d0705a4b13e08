// Package middleware groups the Fiber middleware used by the start command.
//
//   - auth: rejects requests without the configured X-API-Key. Disabled when
//     no key is configured.
//   - rayid: tags each request with a ray id (reusing X-Ray-ID when sent),
//     stored in Locals for logger.WithRayID and echoed in the response.
package middleware
