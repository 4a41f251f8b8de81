/*
Package domain contains the error model shared by every statusbar component.

A fatal failure is represented by Error, which carries a classification
(Config, Block or Other), an optional message, an optional cause and, for
block failures, the identity of the block that produced it. Nothing below the
crash recovery supervisor recovers from an Error: configuration loading,
block spawning and the event loop all return it upwards unchanged.

# Kinds

  - KindConfig: bad, missing or unreadable configuration. Empty stdin yields a
    KindConfig error with no message.
  - KindBlock: a failure attributable to one block; Block holds its position and kind.
  - KindOther: anything else the event loop gives up on.
*/
package domain
