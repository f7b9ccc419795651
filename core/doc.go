/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package core provides the dispatch engine for stated classes.
//
// A stated class is a class whose behavior is composed from States
// that can be enabled and disabled at runtime.  Each State is a
// capability table: a set of methods, each public, protected, or
// private.  An instance of a stated class is a Proxy.  Callers call
// methods on the Proxy by name, and the Proxy finds the one enabled
// State that implements the method at the caller's scope.
//
// Scopes follow ordinary object-oriented rules.  Code outside the
// class sees public methods.  Code in a subclass also sees protected
// methods.  Code in the class itself (including methods of the Proxy
// calling back into the Proxy) sees everything.  Stated classes form
// a single-inheritance chain, and a subclass inherits the States of
// its ancestors that it doesn't override.  An inherited State runs in
// private mode, which hides its private methods from everybody except
// code of the class that defined it.
//
// Method bodies are usually Go functions (see Method).  A
// MethodSource can also give a body as code for an Interpreter.
//
// To use this package, define a Class, then build Proxies with a
// factory (see the factory package), or by hand with NewProxy,
// RegisterState, and EnableState.
package core
