/*
Package ports defines the driven ports (interfaces) of the animation flow runtime.

These interfaces decouple the core logic from external implementations, allowing
the controller to drive any animation backend and the compiler to consume graphs
from any source.

# Key Interfaces

  - AnimatorAdapter: the animation playback capability consumed by states and conditions.
  - GraphLoader: retrieves authored graph descriptions (e.g., from files or memory).
  - Watchable: optional change notifications for hot reload.
*/
package ports
