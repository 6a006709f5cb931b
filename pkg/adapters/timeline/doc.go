// Package timeline provides a headless AnimatorAdapter that advances frame
// indices from a clip table at each clip's frame rate.
package timeline
