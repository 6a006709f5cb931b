/*
Package domain contains the authored data model of an animation flow.

It defines the records a loader populates (Graph, StateRecord, TransitionRecord,
ConditionRecord, ParameterRecord), the tags used to dispatch them to concrete
implementations, the reserved parameter names, and the lifecycle events emitted
by the controller. This package is kept pure and free of I/O.

# Key Entities

  - Graph: states, transitions and parameter declarations as authored.
  - StateRecord: a state id, its playback Variant and animation clip.
  - TransitionRecord: an ordered AND-list of ConditionRecords plus a target.
  - ConditionRecord: a leaf comparison or a composite combinator.
  - Diagnostic: a non-fatal authoring problem repaired during validation.
*/
package domain
